package config

import (
	"strings"
	"testing"

	"github.com/AirplaneConcept/BatchOCR/pkg/types"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero ocr jobs", func(c *Config) { c.OCRJobs = 0 }, "ocr-jobs"},
		{"negative parallel", func(c *Config) { c.ParallelFiles = -1 }, "parallel-files"},
		{"zero sample pages", func(c *Config) { c.SamplePages = 0 }, "sample-pages"},
		{"zero page min chars", func(c *Config) { c.PageMinChars = 0 }, "page-min-chars"},
		{"coverage above one", func(c *Config) { c.MinCoverage = 1.5 }, "min-coverage"},
		{"coverage below zero", func(c *Config) { c.MinCoverage = -0.1 }, "min-coverage"},
		{"bad deskew mode", func(c *Config) { c.DeskewMode = "sometimes" }, "deskew-mode"},
		{"empty lang", func(c *Config) { c.Lang = "" }, "language"},
		{"empty binary", func(c *Config) { c.OCRmyPDFPath = "" }, "ocrmypdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_CoverageBoundariesAccepted(t *testing.T) {
	for _, cov := range []float64{0, 0.30, 1} {
		cfg := DefaultConfig()
		cfg.MinCoverage = cov
		if err := cfg.Validate(); err != nil {
			t.Fatalf("coverage %g should be valid: %v", cov, err)
		}
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	t.Setenv("OCRPIPE_LANG", "deu+eng")
	t.Setenv("OCRPIPE_PARALLEL_FILES", "8")
	t.Setenv("OCRPIPE_MIN_COVERAGE", "0.5")
	t.Setenv("OCRPIPE_DESKEW_MODE", "always")
	t.Setenv("OCRPIPE_OCR_JOBS", "not-a-number") // ignored

	cfg := LoadConfigWithEnvOverrides()

	if cfg.Lang != "deu+eng" {
		t.Fatalf("lang = %q", cfg.Lang)
	}
	if cfg.ParallelFiles != 8 {
		t.Fatalf("parallel files = %d", cfg.ParallelFiles)
	}
	if cfg.MinCoverage != 0.5 {
		t.Fatalf("min coverage = %g", cfg.MinCoverage)
	}
	if cfg.DeskewMode != types.DeskewModeAlways {
		t.Fatalf("deskew mode = %q", cfg.DeskewMode)
	}
	if cfg.OCRJobs != 2 {
		t.Fatalf("malformed env int must keep the default, got %d", cfg.OCRJobs)
	}
}

func TestClone_IndependentExtraArgs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExtraArgs = []string{"--rotate-pages"}

	clone := cfg.Clone()
	clone.ExtraArgs[0] = "--changed"

	if cfg.ExtraArgs[0] != "--rotate-pages" {
		t.Fatal("clone must not share the extra args slice")
	}
}
