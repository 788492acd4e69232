package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AirplaneConcept/BatchOCR/pkg/config"
	"github.com/AirplaneConcept/BatchOCR/pkg/interfaces"
	"github.com/AirplaneConcept/BatchOCR/pkg/logger"
	"github.com/AirplaneConcept/BatchOCR/pkg/ocr"
	"github.com/AirplaneConcept/BatchOCR/pkg/types"
)

// fakeOpener treats every known path as a document with fixed per-page
// text; unknown paths fail to open.
type fakeOpener struct {
	docs map[string][]string
}

func (o *fakeOpener) Open(path string) (interfaces.Document, error) {
	pages, ok := o.docs[path]
	if !ok {
		return nil, errors.New("cannot open document")
	}
	return &fakeDoc{pages: pages}, nil
}

type fakeDoc struct{ pages []string }

func (d *fakeDoc) PageCount() int                 { return len(d.pages) }
func (d *fakeDoc) PageText(i int) (string, error) { return d.pages[i], nil }
func (d *fakeDoc) Close() error                   { return nil }

// okRunner simulates an ocrmypdf that succeeds on the first attempt.
type okRunner struct{}

func (okRunner) Run(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
	dst := args[len(args)-1]
	return nil, nil, os.WriteFile(dst, []byte("searchable pdf"), 0o644)
}

// failRunner simulates an ocrmypdf that always fails.
type failRunner struct{}

func (failRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
	return nil, []byte("ocr engine exploded"), errors.New("exit status 1")
}

func testConfig(execute bool) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Execute = execute
	return cfg
}

func newTestTask(cfg *config.Config, opener interfaces.DocumentOpener, runner interfaces.CommandRunner) *Task {
	log := logger.NewLogger("error", false)
	return NewTask(cfg, opener, ocr.NewConverter(runner, "ocrmypdf", log), log)
}

func textyPages(n int) []string {
	pages := make([]string, n)
	for i := range pages {
		pages[i] = strings.Repeat("text ", 50) // 250 chars, above the 150 default
	}
	return pages
}

func TestProcess_TextyDocumentSkips(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "book.pdf")
	writeFile(t, src, "original")

	opener := &fakeOpener{docs: map[string][]string{src: textyPages(50)}}
	task := newTestTask(testConfig(false), opener, failRunner{})

	res := task.Process(context.Background(), src)

	if res.Action != types.OutcomeSkip {
		t.Fatalf("action = %s, want skip", res.Action)
	}
	if res.NeedsOCR {
		t.Fatal("fully texty document should not need OCR")
	}
	if res.Coverage != 1.0 {
		t.Fatalf("coverage = %g, want 1.0", res.Coverage)
	}
	if res.Temp != "" || res.OCR != "" || res.Orig != "" {
		t.Fatal("skip must not resolve a path triple")
	}
}

func TestProcess_UnreadableDocumentDryRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.pdf")
	writeFile(t, src, "not a pdf")

	opener := &fakeOpener{docs: map[string][]string{}}
	task := newTestTask(testConfig(false), opener, failRunner{})

	res := task.Process(context.Background(), src)

	if res.Action != types.OutcomeWouldOCR {
		t.Fatalf("action = %s, want would_ocr", res.Action)
	}
	if res.SampledPages != 0 {
		t.Fatalf("sampled = %d, want 0", res.SampledPages)
	}
	if res.Temp == "" || res.OCR == "" || res.Orig == "" {
		t.Fatal("dry-run should still report the resolved path triple")
	}

	// dry-run is pure: no subprocess output, no filesystem change
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("dry-run mutated the directory: %d entries", len(entries))
	}
	if res.Attempts != 0 {
		t.Fatalf("dry-run must not attempt OCR, attempts = %d", res.Attempts)
	}
}

func TestProcess_ExecuteSuccessEndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "scanned.pdf")
	writeFile(t, src, "image-only original")

	// ten pages, none with meaningful text
	opener := &fakeOpener{docs: map[string][]string{src: make([]string, 10)}}
	task := newTestTask(testConfig(true), opener, okRunner{})

	res := task.Process(context.Background(), src)

	if res.Action != types.OutcomeOCRSuccess {
		t.Fatalf("action = %s, want ocr_success (error: %s)", res.Action, res.Error)
	}
	if res.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", res.Attempts)
	}
	if res.ReturnCode != 0 {
		t.Fatalf("returncode = %d, want 0", res.ReturnCode)
	}

	// the original is preserved under its tag, the OCR output is at its
	// final name, no data was lost
	if got := readFile(t, res.Orig); got != "image-only original" {
		t.Fatalf("original content lost: %q", got)
	}
	if got := readFile(t, res.OCR); got != "searchable pdf" {
		t.Fatalf("ocr output wrong: %q", got)
	}
	if exists(src) {
		t.Fatal("source name should have been renamed away")
	}
	if exists(res.Temp) {
		t.Fatal("temp should have been promoted away")
	}
}

func TestProcess_ExecuteOCRFailureLeavesSourceUntouched(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "scanned.pdf")
	writeFile(t, src, "image-only original")

	opener := &fakeOpener{docs: map[string][]string{src: make([]string, 10)}}
	task := newTestTask(testConfig(true), opener, failRunner{})

	res := task.Process(context.Background(), src)

	if res.Action != types.OutcomeOCRFailed {
		t.Fatalf("action = %s, want ocr_failed", res.Action)
	}
	if res.Attempts != 2 {
		t.Fatalf("attempts = %d, want 2", res.Attempts)
	}
	if !strings.Contains(res.Error, "ocr engine exploded") {
		t.Fatalf("expected captured stderr, got %q", res.Error)
	}
	if got := readFile(t, src); got != "image-only original" {
		t.Fatalf("source was modified: %q", got)
	}
	if exists(res.Temp) || exists(res.OCR) || exists(res.Orig) {
		t.Fatal("failed OCR must leave no tagged files behind")
	}
}

func TestProcess_CoverageBelowThresholdNeedsOCR(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "mixed.pdf")
	writeFile(t, src, "original")

	// 2 texty pages out of 10 -> coverage 0.2, below the 0.30 default
	pages := make([]string, 10)
	pages[0] = strings.Repeat("t", 200)
	pages[5] = strings.Repeat("t", 200)
	opener := &fakeOpener{docs: map[string][]string{src: pages}}
	task := newTestTask(testConfig(false), opener, failRunner{})

	res := task.Process(context.Background(), src)

	if !res.NeedsOCR {
		t.Fatalf("coverage %g below threshold must need OCR", res.Coverage)
	}
	if res.Action != types.OutcomeWouldOCR {
		t.Fatalf("action = %s, want would_ocr", res.Action)
	}
}
