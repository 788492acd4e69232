package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/AirplaneConcept/BatchOCR/pkg/constants"
	"github.com/AirplaneConcept/BatchOCR/pkg/types"
)

// Config holds the run configuration
type Config struct {
	// Run scope
	Root    string `json:"root"`
	Execute bool   `json:"execute"`
	LogPath string `json:"log_path"`

	// OCR invocation
	OCRmyPDFPath string           `json:"ocrmypdf_path"`
	Lang         string           `json:"lang"`
	Renderer     string           `json:"renderer"`
	OCRJobs      int              `json:"ocr_jobs"`
	Deskew       bool             `json:"deskew"`
	DeskewMode   types.DeskewMode `json:"deskew_mode"`
	ExtraArgs    []string         `json:"extra_args"`

	// Cross-file parallelism
	ParallelFiles int `json:"parallel_files"`

	// Detection tuning
	SamplePages  int     `json:"sample_pages"`
	PageMinChars int     `json:"page_min_chars"`
	MinCoverage  float64 `json:"min_coverage"`

	// Logging
	LogLevel      string `json:"log_level"`
	EnableVerbose bool   `json:"enable_verbose"`
}

// DefaultConfig returns a configuration with the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		OCRmyPDFPath:  constants.DefaultOCRmyPDFPath,
		Lang:          constants.DefaultLang,
		Renderer:      constants.DefaultRenderer,
		OCRJobs:       constants.DefaultOCRJobs,
		DeskewMode:    types.DeskewModeRetry,
		ParallelFiles: constants.DefaultParallelFiles,
		SamplePages:   constants.DefaultSamplePages,
		PageMinChars:  constants.DefaultPageMinChars,
		MinCoverage:   constants.DefaultMinCoverage,
		LogLevel:      "info",
	}
}

// LoadConfigWithEnvOverrides builds the default config and applies
// OCRPIPE_* environment variable overrides. Command line flags are
// applied on top of this by the cmd layer.
func LoadConfigWithEnvOverrides() *Config {
	cfg := DefaultConfig()

	if value := os.Getenv("OCRPIPE_OCRMYPDF_PATH"); value != "" {
		cfg.OCRmyPDFPath = value
	}
	if value := os.Getenv("OCRPIPE_LANG"); value != "" {
		cfg.Lang = value
	}
	if value := os.Getenv("OCRPIPE_RENDERER"); value != "" {
		cfg.Renderer = value
	}
	if value := os.Getenv("OCRPIPE_OCR_JOBS"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			cfg.OCRJobs = intVal
		}
	}
	if value := os.Getenv("OCRPIPE_PARALLEL_FILES"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			cfg.ParallelFiles = intVal
		}
	}
	if value := os.Getenv("OCRPIPE_SAMPLE_PAGES"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			cfg.SamplePages = intVal
		}
	}
	if value := os.Getenv("OCRPIPE_PAGE_MIN_CHARS"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			cfg.PageMinChars = intVal
		}
	}
	if value := os.Getenv("OCRPIPE_MIN_COVERAGE"); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			cfg.MinCoverage = floatVal
		}
	}
	if value := os.Getenv("OCRPIPE_DESKEW_MODE"); value != "" {
		cfg.DeskewMode = types.DeskewMode(value)
	}
	if value := os.Getenv("OCRPIPE_LOG_LEVEL"); value != "" {
		cfg.LogLevel = value
	}
	if value := os.Getenv("OCRPIPE_VERBOSE"); value != "" {
		cfg.EnableVerbose = value == "true" || value == "1" || value == "yes"
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return NewConfigValidator().Validate(c)
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	clone.ExtraArgs = append([]string(nil), c.ExtraArgs...)
	return &clone
}

// String returns a short description of the configuration
func (c *Config) String() string {
	mode := "DRY-RUN"
	if c.Execute {
		mode = "EXECUTE"
	}
	return fmt.Sprintf("Config{Mode: %s, Root: %s, Parallel: %d}", mode, c.Root, c.ParallelFiles)
}
