// Package ocr drives the external ocrmypdf tool with a bounded two
// attempt retry policy. It writes only to the temp path it is given and
// never touches the source file.
package ocr

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/AirplaneConcept/BatchOCR/pkg/constants"
	"github.com/AirplaneConcept/BatchOCR/pkg/interfaces"
	"github.com/AirplaneConcept/BatchOCR/pkg/logger"
	"github.com/AirplaneConcept/BatchOCR/pkg/types"
)

// Params captures the tunables of a single ocrmypdf invocation
type Params struct {
	Lang      string
	Renderer  string
	Jobs      int
	Optimize  string
	Deskew    bool
	ExtraArgs []string
}

// ConvertOptions configures the full attempt sequence for one file
type ConvertOptions struct {
	Lang       string
	Renderer   string
	Jobs       int
	Deskew     bool
	DeskewMode types.DeskewMode
	ExtraArgs  []string
}

// ConvertResult reports how the attempt sequence ended. Error keeps the
// diagnostic text of the most recent failed attempt even when a later
// attempt succeeded, so the log shows what the retry recovered from.
type ConvertResult struct {
	OK         bool
	Attempts   int
	ReturnCode int
	Error      string
}

// Converter invokes ocrmypdf through an injectable command runner
type Converter struct {
	runner interfaces.CommandRunner
	binary string
	log    *logger.Logger
}

// NewConverter creates a converter for the given ocrmypdf binary
func NewConverter(runner interfaces.CommandRunner, binary string, log *logger.Logger) *Converter {
	return &Converter{runner: runner, binary: binary, log: log}
}

// Available reports whether the ocrmypdf binary can be found. Dry-run
// never needs the tool, so this is checked only before execute mode.
func (c *Converter) Available() bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

// BuildArgs assembles the ocrmypdf argument list for one attempt.
// --continue-on-soft-render-error is always set so a single malformed
// page does not abort the whole document.
func (c *Converter) BuildArgs(src, dst string, p Params) []string {
	args := []string{
		"--skip-text",
		"--output-type", constants.OutputTypePDF,
		"--pdf-renderer", p.Renderer,
		"--jobs", strconv.Itoa(p.Jobs),
		"-l", p.Lang,
		"--continue-on-soft-render-error",
		"--optimize", p.Optimize,
	}
	if p.Deskew {
		args = append(args, "--deskew")
	}
	args = append(args, p.ExtraArgs...)
	args = append(args, src, dst)
	return args
}

// Convert runs up to two OCR attempts for src, writing to tmp.
//
// Attempt 1 uses standard optimization; attempt 2 falls back to no
// optimization, a more tolerant mode that salvages documents failing the
// stricter pass. An attempt succeeds only when the process exits zero
// AND the temp output exists on disk; either condition alone is not
// enough. Partial temp output is deleted between attempts so nothing
// stale leaks into the retry or gets mistaken for success.
func (c *Converter) Convert(ctx context.Context, src, tmp string, opts ConvertOptions) ConvertResult {
	optimizeSequence := []string{constants.OptimizeStandard, constants.OptimizeNone}

	var res ConvertResult
	for i, optimize := range optimizeSequence {
		attempt := i + 1
		res.Attempts = attempt

		params := Params{
			Lang:      opts.Lang,
			Renderer:  opts.Renderer,
			Jobs:      opts.Jobs,
			Optimize:  optimize,
			Deskew:    deskewForAttempt(opts, attempt),
			ExtraArgs: opts.ExtraArgs,
		}
		args := c.BuildArgs(src, tmp, params)

		c.log.Info("ocrmypdf attempt %d (optimize=%s) for %s", attempt, optimize, src)
		_, stderr, err := c.runner.Run(ctx, c.binary, args...)
		res.ReturnCode = exitCode(err)

		if res.ReturnCode == 0 && fileExists(tmp) {
			res.OK = true
			return res
		}

		removeIfExists(tmp)

		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			res.Error = truncate(msg, constants.MaxStoredErrorChars)
		} else {
			res.Error = "ocrmypdf failed"
		}
		c.log.Warn("ocrmypdf attempt %d failed for %s (rc=%d)", attempt, src, res.ReturnCode)
	}

	return res
}

// deskewForAttempt applies the three-way deskew policy: never when the
// flag is off, every attempt in "always" mode, only the retry in
// "retry" mode.
func deskewForAttempt(opts ConvertOptions, attempt int) bool {
	if !opts.Deskew {
		return false
	}
	switch opts.DeskewMode {
	case types.DeskewModeAlways:
		return true
	case types.DeskewModeRetry:
		return attempt == constants.MaxOCRAttempts
	default:
		return false
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func removeIfExists(path string) {
	if fileExists(path) {
		_ = os.Remove(path)
	}
}
