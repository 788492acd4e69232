// Package pdftext reads the embedded text layer of PDF files.
//
// It uses the ledongthuc/pdf library, a pure Go implementation with no
// CGO or external dependencies, so the detector works from a single
// binary. Only text extraction is performed here; no PDF is ever
// modified.
package pdftext

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/AirplaneConcept/BatchOCR/pkg/interfaces"
)

// Opener opens PDF files for text inspection
type Opener struct{}

// NewOpener creates a new PDF opener
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the PDF at path and returns a Document over its text layer
func (o *Opener) Open(path string) (interfaces.Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &document{
		file:   f,
		reader: r,
		fonts:  make(map[string]*pdf.Font),
	}, nil
}

type document struct {
	file   *os.File
	reader *pdf.Reader
	// fonts caches font objects across pages; GetPlainText needs them to
	// decode glyphs and they repeat heavily within one document.
	fonts map[string]*pdf.Font
}

// PageCount returns the number of pages in the document
func (d *document) PageCount() int {
	return d.reader.NumPage()
}

// PageText returns the plain text of the zero-based page index. The
// underlying library panics on some malformed content streams, so the
// panic is converted into an ordinary error here.
func (d *document) PageText(index int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract page %d: %v", index+1, r)
		}
	}()

	p := d.reader.Page(index + 1) // library pages are 1-based
	if p.V.IsNull() {
		return "", fmt.Errorf("page %d is missing", index+1)
	}

	for _, name := range p.Fonts() {
		if _, ok := d.fonts[name]; !ok {
			font := p.Font(name)
			d.fonts[name] = &font
		}
	}

	return p.GetPlainText(d.fonts)
}

// Close releases the underlying file handle
func (d *document) Close() error {
	return d.file.Close()
}
