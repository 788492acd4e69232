package constants

// Application constants
const (
	AppName = "batchocr"
	// Note: AppVersion is managed via build-time ldflags injection in main.go
)

// Filename tag markers. Each marker is distinctive enough not to collide
// with ordinary file names, and any file already carrying one is excluded
// from discovery so re-scans are idempotent.
const (
	TagOrig = " __OCRPIPE_ORIG__" // renamed original, preserved after a successful swap
	TagOCR  = " __OCRPIPE_OCR__"  // final searchable output
	TagTemp = " __OCRPIPE_TMP__"  // in-progress OCR output, promoted only after verification
)

// File handling constants
const (
	PDFExtension = ".pdf"

	DefaultFilePermission = 0644
	DefaultDirPermission  = 0755
)

// Detection defaults, tuned for illustrated books: a bounded page sample
// keeps long documents cheap to classify.
const (
	DefaultSamplePages  = 20
	DefaultPageMinChars = 150
	DefaultMinCoverage  = 0.30
)

// OCR defaults (books)
const (
	DefaultLang          = "eng"
	DefaultRenderer      = "sandwich"
	DefaultOCRJobs       = 2 // per-file internal ocrmypdf parallelism
	DefaultParallelFiles = 4 // PDFs processed concurrently

	DefaultOCRmyPDFPath = "ocrmypdf"

	OutputTypePDF = "pdf" // avoid the PDF/A banner and bloat

	// Optimization levels for the attempt sequence: the retry falls back
	// to the more tolerant unoptimized mode.
	OptimizeStandard = "1"
	OptimizeNone     = "0"

	MaxOCRAttempts = 2
)

// Diagnostic text limits
const (
	// Stderr stored in a task record is capped so one noisy failure
	// cannot bloat the log file.
	MaxStoredErrorChars = 800

	// Progress lines show only a short excerpt of the error.
	ErrorExcerptChars = 200
)
