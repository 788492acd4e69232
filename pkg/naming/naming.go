// Package naming derives the tagged sibling paths used by the swap
// protocol and recognizes files that already carry a tag.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AirplaneConcept/BatchOCR/pkg/constants"
	"github.com/AirplaneConcept/BatchOCR/pkg/types"
)

// IsTagged reports whether a file name carries any of the pipeline tag
// markers. Tagged files are excluded from discovery so re-scans never
// reprocess previous output.
func IsTagged(name string) bool {
	return strings.Contains(name, constants.TagOrig) ||
		strings.Contains(name, constants.TagOCR) ||
		strings.Contains(name, constants.TagTemp)
}

// UniquePath returns path if it does not exist, otherwise the first
// " (1)", " (2)", ... suffixed variant (before the extension) that is
// free.
//
// The check-then-use gap between resolution and first write is an
// accepted limitation; the temp path must remain creatable by the
// external OCR process, so exclusive pre-creation is not an option.
func UniquePath(path string) string {
	if !exists(path) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, i, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

// ResolveTriple derives the three collision-free sibling paths for a
// candidate file. Each path is disambiguated independently.
func ResolveTriple(src string) types.PathTriple {
	base := strings.TrimSuffix(src, filepath.Ext(src))
	return types.PathTriple{
		Orig: UniquePath(base + constants.TagOrig + constants.PDFExtension),
		OCR:  UniquePath(base + constants.TagOCR + constants.PDFExtension),
		Temp: UniquePath(base + constants.TagTemp + constants.PDFExtension),
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
