package types

// Outcome represents the terminal action recorded for one file task
type Outcome string

const (
	OutcomeSkip             Outcome = "skip"               // document already has usable text
	OutcomeWouldOCR         Outcome = "would_ocr"          // dry-run: OCR would be performed
	OutcomeOCRSuccess       Outcome = "ocr_success"        // converted, original preserved under its tag
	OutcomeOCRFailed        Outcome = "ocr_failed"         // all attempts exhausted, source untouched
	OutcomeRenameOrigFailed Outcome = "rename_orig_failed" // source could not be renamed, temp kept for review
	OutcomePromoteFailed    Outcome = "promote_failed"     // temp could not be promoted, rollback attempted
)

// AllOutcomes returns every outcome in summary display order.
func AllOutcomes() []Outcome {
	return []Outcome{
		OutcomeSkip,
		OutcomeWouldOCR,
		OutcomeOCRSuccess,
		OutcomeOCRFailed,
		OutcomeRenameOrigFailed,
		OutcomePromoteFailed,
	}
}

// DeskewMode controls which OCR attempts apply page deskew
type DeskewMode string

const (
	DeskewModeRetry  DeskewMode = "retry"  // deskew only on the second, relaxed attempt
	DeskewModeAlways DeskewMode = "always" // deskew on every attempt
)

// Valid reports whether the mode is one of the supported values.
func (m DeskewMode) Valid() bool {
	return m == DeskewModeRetry || m == DeskewModeAlways
}

// CoverageSample holds the result of text-coverage detection over a
// bounded page sample. It is computed once per file and never mutated.
type CoverageSample struct {
	SampledPages int     `json:"sampled_pages"`
	TextyPages   int     `json:"texty_pages"`
	Coverage     float64 `json:"coverage"`
}

// PathTriple holds the three collision-free sibling paths derived for a
// candidate file. None of the paths exists at resolution time.
type PathTriple struct {
	Orig string `json:"orig"` // destination for the renamed original
	OCR  string `json:"ocr"`  // final searchable output
	Temp string `json:"tmp"`  // in-progress OCR output
}

// TaskResult is the terminal record for one processed file. Field names
// match the JSON Lines log shape. Created once per file by its task and
// immutable afterwards; the reporting layer stamps the run ID before
// writing.
type TaskResult struct {
	RunID        string  `json:"run_id,omitempty"`
	File         string  `json:"file"`
	SampledPages int     `json:"sampled_pages"`
	TextyPages   int     `json:"texty_pages"`
	Coverage     float64 `json:"coverage"`
	NeedsOCR     bool    `json:"needs_ocr"`
	Action       Outcome `json:"action"`
	Error        string  `json:"error,omitempty"`
	ReturnCode   int     `json:"returncode"`
	Attempts     int     `json:"attempts"`
	Temp         string  `json:"tmp,omitempty"`
	OCR          string  `json:"ocr,omitempty"`
	Orig         string  `json:"orig,omitempty"`
}

// Failed reports whether the outcome is one of the failure states that
// should surface an error excerpt in progress output.
func (r TaskResult) Failed() bool {
	switch r.Action {
	case OutcomeOCRFailed, OutcomeRenameOrigFailed, OutcomePromoteFailed:
		return true
	default:
		return false
	}
}
