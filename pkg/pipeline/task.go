// Package pipeline sequences detection, OCR attempts and the swap
// protocol into one task per candidate file, and schedules those tasks
// with bounded parallelism.
package pipeline

import (
	"context"

	"github.com/AirplaneConcept/BatchOCR/pkg/config"
	"github.com/AirplaneConcept/BatchOCR/pkg/detect"
	"github.com/AirplaneConcept/BatchOCR/pkg/interfaces"
	"github.com/AirplaneConcept/BatchOCR/pkg/logger"
	"github.com/AirplaneConcept/BatchOCR/pkg/naming"
	"github.com/AirplaneConcept/BatchOCR/pkg/ocr"
	"github.com/AirplaneConcept/BatchOCR/pkg/types"
)

// Task processes single candidate files to terminal TaskResults. One
// Task instance is shared across workers; all per-file state lives in
// the result.
type Task struct {
	cfg       *config.Config
	opener    interfaces.DocumentOpener
	converter *ocr.Converter
	log       *logger.Logger
}

// NewTask creates a task processor with the given collaborators
func NewTask(cfg *config.Config, opener interfaces.DocumentOpener, converter *ocr.Converter, log *logger.Logger) *Task {
	return &Task{cfg: cfg, opener: opener, converter: converter, log: log}
}

// Process runs one file through detect -> decide -> OCR attempts ->
// swap and returns its terminal record. In dry-run mode the task stops
// right after the decision: no subprocess runs and nothing on disk
// changes.
func (t *Task) Process(ctx context.Context, src string) types.TaskResult {
	sample := detect.Detect(t.opener, src, t.cfg.SamplePages, t.cfg.PageMinChars)
	needsOCR := detect.NeedsOCR(sample, t.cfg.MinCoverage)
	t.log.Debug("detected %s: sampled=%d texty=%d coverage=%.2f needs_ocr=%v",
		src, sample.SampledPages, sample.TextyPages, sample.Coverage, needsOCR)

	res := types.TaskResult{
		File:         src,
		SampledPages: sample.SampledPages,
		TextyPages:   sample.TextyPages,
		Coverage:     sample.Coverage,
		NeedsOCR:     needsOCR,
	}

	if !needsOCR {
		res.Action = types.OutcomeSkip
		return res
	}

	paths := naming.ResolveTriple(src)
	res.Temp = paths.Temp
	res.OCR = paths.OCR
	res.Orig = paths.Orig

	if !t.cfg.Execute {
		res.Action = types.OutcomeWouldOCR
		return res
	}

	conv := t.converter.Convert(ctx, src, paths.Temp, ocr.ConvertOptions{
		Lang:       t.cfg.Lang,
		Renderer:   t.cfg.Renderer,
		Jobs:       t.cfg.OCRJobs,
		Deskew:     t.cfg.Deskew,
		DeskewMode: t.cfg.DeskewMode,
		ExtraArgs:  t.cfg.ExtraArgs,
	})
	res.Attempts = conv.Attempts
	res.ReturnCode = conv.ReturnCode
	res.Error = conv.Error

	if !conv.OK {
		// no filesystem mutation has happened; the source is untouched
		res.Action = types.OutcomeOCRFailed
		return res
	}

	outcome, err := Swap(src, paths)
	res.Action = outcome
	if err != nil {
		res.Error = err.Error()
	}
	return res
}
