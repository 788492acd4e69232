package pipeline

import (
	"fmt"
	"os"

	"github.com/AirplaneConcept/BatchOCR/pkg/types"
)

// renameFunc is swappable so tests can inject rename failures.
var renameFunc = os.Rename

// SwapError reports a failed stage of the swap protocol. It carries the
// primary cause and, when a best-effort rollback was attempted and also
// failed, the rollback cause, so an operator can see the residual
// inconsistency.
type SwapError struct {
	Op          string // "rename_orig" or "promote"
	Cause       error
	RollbackErr error
}

// Error returns both causes when rollback failed too, matching the
// logged record shape.
func (e *SwapError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("%v | rollback_failed: %v", e.Cause, e.RollbackErr)
	}
	return e.Cause.Error()
}

// Unwrap returns the primary cause
func (e *SwapError) Unwrap() error { return e.Cause }

// Swap makes a verified temp output durable without ever deleting the
// original or overwriting an existing file.
//
// Stage 1 renames the source to its orig-tag path. This runs only after
// a verified-good temp exists, so the original is never touched until a
// replacement is safely on disk. On failure the temp is deliberately
// kept for manual recovery and the source is left untouched.
//
// Stage 2 promotes the temp to its final ocr-tag path. On failure the
// orig rename is rolled back best-effort; if the rollback itself fails,
// both causes are recorded and manual intervention is required.
func Swap(src string, paths types.PathTriple) (types.Outcome, error) {
	if err := renameFunc(src, paths.Orig); err != nil {
		return types.OutcomeRenameOrigFailed, &SwapError{Op: "rename_orig", Cause: err}
	}

	if err := renameFunc(paths.Temp, paths.OCR); err != nil {
		swapErr := &SwapError{Op: "promote", Cause: err}
		if rbErr := renameFunc(paths.Orig, src); rbErr != nil {
			swapErr.RollbackErr = rbErr
		}
		return types.OutcomePromoteFailed, swapErr
	}

	return types.OutcomeOCRSuccess, nil
}
