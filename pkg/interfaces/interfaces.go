package interfaces

import "context"

// Document is an open PDF exposing per-page access to its embedded text
// layer. Page indices are zero-based.
type Document interface {
	// PageCount returns the number of pages in the document
	PageCount() int

	// PageText returns the plain text of the page at the given index
	PageText(index int) (string, error)

	// Close releases the underlying file handle
	Close() error
}

// DocumentOpener opens PDF documents for text-layer inspection. The
// coverage detector consumes this contract; implementations must not
// mutate the file.
type DocumentOpener interface {
	Open(path string) (Document, error)
}

// CommandRunner executes an external command and returns its captured
// output. It exists so the OCR attempt runner can be tested with fake
// process outcomes instead of real external binaries.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}
