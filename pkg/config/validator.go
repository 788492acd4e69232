package config

import (
	"fmt"
	"strings"
)

// ConfigValidator validates run configuration
type ConfigValidator struct{}

// NewConfigValidator creates a config validator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// Validate checks every tunable and reports all problems at once
func (v *ConfigValidator) Validate(c *Config) error {
	var problems []string

	if c.OCRmyPDFPath == "" {
		problems = append(problems, "ocrmypdf path cannot be empty")
	}
	if c.Lang == "" {
		problems = append(problems, "language cannot be empty")
	}
	if c.Renderer == "" {
		problems = append(problems, "renderer cannot be empty")
	}
	if c.OCRJobs < 1 {
		problems = append(problems, fmt.Sprintf("ocr-jobs must be at least 1, got %d", c.OCRJobs))
	}
	if c.ParallelFiles < 1 {
		problems = append(problems, fmt.Sprintf("parallel-files must be at least 1, got %d", c.ParallelFiles))
	}
	if c.SamplePages < 1 {
		problems = append(problems, fmt.Sprintf("sample-pages must be at least 1, got %d", c.SamplePages))
	}
	if c.PageMinChars < 1 {
		problems = append(problems, fmt.Sprintf("page-min-chars must be at least 1, got %d", c.PageMinChars))
	}
	if c.MinCoverage < 0 || c.MinCoverage > 1 {
		problems = append(problems, fmt.Sprintf("min-coverage must be within [0,1], got %g", c.MinCoverage))
	}
	if !c.DeskewMode.Valid() {
		problems = append(problems, fmt.Sprintf("deskew-mode must be 'retry' or 'always', got %q", c.DeskewMode))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}
