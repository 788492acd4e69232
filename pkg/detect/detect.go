// Package detect decides whether a PDF needs OCR by sampling a bounded
// subset of pages and measuring how many carry meaningful embedded text.
package detect

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/AirplaneConcept/BatchOCR/pkg/interfaces"
	"github.com/AirplaneConcept/BatchOCR/pkg/types"
)

// SampledPageIndices selects a deterministic, evenly-spaced subset of
// page indices. Documents at or below the sample size are sampled in
// full; longer documents get exactly samplePages distinct indices spread
// by linear interpolation across [0, nPages-1], always including the
// first and last page. Two runs on the same document yield identical
// samples.
func SampledPageIndices(nPages, samplePages int) []int {
	if nPages <= 0 {
		return nil
	}
	if nPages <= samplePages {
		idxs := make([]int, nPages)
		for i := range idxs {
			idxs[i] = i
		}
		return idxs
	}
	if samplePages <= 1 {
		return []int{0}
	}

	seen := make(map[int]bool, samplePages)
	idxs := make([]int, 0, samplePages)
	step := float64(nPages-1) / float64(samplePages-1)
	for i := 0; i < samplePages; i++ {
		j := int(math.Round(float64(i) * step))
		if !seen[j] {
			seen[j] = true
			idxs = append(idxs, j)
		}
	}
	sort.Ints(idxs)
	return idxs
}

// Detect computes the fraction of sampled pages with meaningful text.
//
// Failure handling is deliberately fail-safe: a document that cannot be
// opened returns a zero sample (interpreted by the caller as "needs
// OCR"), and a page that cannot be extracted counts as non-texty rather
// than aborting the scan.
func Detect(opener interfaces.DocumentOpener, path string, samplePages, pageMinChars int) types.CoverageSample {
	doc, err := opener.Open(path)
	if err != nil {
		return types.CoverageSample{}
	}
	defer doc.Close()

	idxs := SampledPageIndices(doc.PageCount(), samplePages)
	texty := 0
	for _, i := range idxs {
		text, err := doc.PageText(i)
		if err != nil {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(text)) >= pageMinChars {
			texty++
		}
	}

	sample := types.CoverageSample{
		SampledPages: len(idxs),
		TextyPages:   texty,
	}
	if sample.SampledPages > 0 {
		sample.Coverage = float64(texty) / float64(sample.SampledPages)
	}
	return sample
}

// NeedsOCR applies the decision rule: a document needs OCR when nothing
// could be sampled or its coverage falls below the threshold. Coverage
// exactly at the threshold does not need OCR.
func NeedsOCR(sample types.CoverageSample, minCoverage float64) bool {
	return sample.SampledPages == 0 || sample.Coverage < minCoverage
}
