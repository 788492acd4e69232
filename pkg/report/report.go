// Package report is the single consumer of completed task results: it
// owns the aggregate counters, the per-file progress lines and the
// append-only JSON Lines log handle.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/AirplaneConcept/BatchOCR/pkg/constants"
	"github.com/AirplaneConcept/BatchOCR/pkg/logger"
	"github.com/AirplaneConcept/BatchOCR/pkg/types"
)

// Reporter aggregates task results. It must only be used from one
// goroutine (the scheduler's consumer loop), which is what makes the
// counters and the log file safe without locking.
type Reporter struct {
	runID   string
	log     *logger.Logger
	counts  map[types.Outcome]int
	total   int
	logFile *os.File
	enc     *json.Encoder
}

// NewReporter creates a reporter, opening the JSONL log in append mode
// when a path is configured. The log's parent directory is created if
// missing; an existing log is never truncated.
func NewReporter(logPath string, log *logger.Logger) (*Reporter, error) {
	r := &Reporter{
		runID:  uuid.NewString(),
		log:    log,
		counts: make(map[types.Outcome]int),
	}

	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), constants.DefaultDirPermission); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, constants.DefaultFilePermission)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		r.logFile = f
		r.enc = json.NewEncoder(f)
	}

	return r, nil
}

// RunID returns the identifier stamped into every record of this run
func (r *Reporter) RunID() string {
	return r.runID
}

// Count returns how many tasks ended with the given outcome
func (r *Reporter) Count(outcome types.Outcome) int {
	return r.counts[outcome]
}

// Consume folds one completed result into the counters, prints its
// progress line (clean skips stay quiet) and appends its JSONL record.
func (r *Reporter) Consume(res types.TaskResult) {
	r.total++
	r.counts[res.Action]++

	if res.Action != types.OutcomeSkip {
		r.log.ProgressAlways("%-18s cov=%.2f  %s", res.Action, res.Coverage, filepath.Base(res.File))
		if res.Failed() && res.Error != "" {
			r.log.ProgressAlways("  error: %s", excerpt(res.Error, constants.ErrorExcerptChars))
		}
	}

	if r.enc != nil {
		res.RunID = r.runID
		if err := r.enc.Encode(res); err != nil {
			r.log.Warn("failed to append log record for %s: %v", res.File, err)
		}
	}
}

// Summary prints the per-outcome counts after the run completes
func (r *Reporter) Summary(totalCandidates int, execute bool, logPath string) {
	r.log.ProgressAlways("")
	r.log.ProgressAlways("Summary:")
	r.log.ProgressAlways("  Total PDFs scanned:   %d", totalCandidates)
	r.log.ProgressAlways("  Skipped (searchable): %d", r.counts[types.OutcomeSkip])
	r.log.ProgressAlways("  Needs OCR (dry-run):  %d", r.counts[types.OutcomeWouldOCR])
	r.log.ProgressAlways("  OCR succeeded:        %d", r.counts[types.OutcomeOCRSuccess])
	r.log.ProgressAlways("  OCR failed:           %d", r.counts[types.OutcomeOCRFailed])
	r.log.ProgressAlways("  Rename orig failed:   %d", r.counts[types.OutcomeRenameOrigFailed])
	r.log.ProgressAlways("  Promote failed:       %d", r.counts[types.OutcomePromoteFailed])
	if logPath != "" {
		r.log.ProgressAlways("  Log: %s", logPath)
	}
	if !execute {
		r.log.ProgressAlways("")
		r.log.ProgressAlways("NOTE: DRY-RUN mode. Re-run with --execute to make changes.")
	}
}

// Close releases the log file handle, if any
func (r *Reporter) Close() error {
	if r.logFile != nil {
		return r.logFile.Close()
	}
	return nil
}

func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
