// Package scan discovers candidate PDF files under a root directory.
package scan

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AirplaneConcept/BatchOCR/pkg/constants"
	"github.com/AirplaneConcept/BatchOCR/pkg/naming"
)

// Candidates walks root recursively and returns every untagged PDF in
// sorted order. Files already carrying a pipeline tag are previous
// output (or in-progress residue) and are excluded, which makes
// re-scans idempotent. Discovery only stats entries; file contents are
// not read here.
func Candidates(root string) ([]string, error) {
	root = filepath.Clean(root)

	files := make([]string, 0, 64)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		if !strings.EqualFold(filepath.Ext(name), constants.PDFExtension) {
			return nil
		}
		if naming.IsTagged(name) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// stable order regardless of platform or filesystem
	sort.Strings(files)
	return files, nil
}
