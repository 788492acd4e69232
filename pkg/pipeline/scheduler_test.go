package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AirplaneConcept/BatchOCR/pkg/interfaces"
	"github.com/AirplaneConcept/BatchOCR/pkg/types"
)

// slowOpener fails every open after a short delay while tracking how
// many opens run concurrently.
type slowOpener struct {
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (o *slowOpener) Open(string) (interfaces.Document, error) {
	cur := o.inFlight.Add(1)
	for {
		seen := o.maxSeen.Load()
		if cur <= seen || o.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	o.inFlight.Add(-1)
	return nil, errors.New("cannot open document")
}

func TestScheduler_ProcessesEveryFileOnce(t *testing.T) {
	dir := t.TempDir()
	files := make([]string, 0, 17)
	for i := 0; i < 17; i++ {
		files = append(files, filepath.Join(dir, string(rune('a'+i))+".pdf"))
	}

	task := newTestTask(testConfig(false), &slowOpener{}, failRunner{})
	scheduler := NewScheduler(task, 4)

	var mu sync.Mutex
	got := make(map[string]int)
	scheduler.Run(context.Background(), files, func(res types.TaskResult) {
		mu.Lock()
		got[res.File]++
		mu.Unlock()
		if res.Action != types.OutcomeWouldOCR {
			t.Errorf("unexpected action %s for %s", res.Action, res.File)
		}
	})

	if len(got) != len(files) {
		t.Fatalf("expected %d distinct results, got %d", len(files), len(got))
	}
	for f, n := range got {
		if n != 1 {
			t.Fatalf("file %s processed %d times", f, n)
		}
	}
}

func TestScheduler_BoundedParallelism(t *testing.T) {
	dir := t.TempDir()
	files := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		files = append(files, filepath.Join(dir, string(rune('a'+i))+".pdf"))
	}

	opener := &slowOpener{}
	task := newTestTask(testConfig(false), opener, failRunner{})
	scheduler := NewScheduler(task, 3)

	count := 0
	scheduler.Run(context.Background(), files, func(types.TaskResult) { count++ })

	if count != len(files) {
		t.Fatalf("consumed %d results, want %d", count, len(files))
	}
	if max := opener.maxSeen.Load(); max > 3 {
		t.Fatalf("observed %d concurrent tasks, cap is 3", max)
	}
}

func TestScheduler_ZeroOrNegativeCapClampedToOne(t *testing.T) {
	task := newTestTask(testConfig(false), &slowOpener{}, failRunner{})
	s := NewScheduler(task, 0)
	if s.parallel != 1 {
		t.Fatalf("parallel = %d, want 1", s.parallel)
	}
}

func TestScheduler_NoFiles(t *testing.T) {
	task := newTestTask(testConfig(false), &slowOpener{}, failRunner{})
	scheduler := NewScheduler(task, 4)

	called := false
	scheduler.Run(context.Background(), nil, func(types.TaskResult) { called = true })
	if called {
		t.Fatal("consumer must not run without files")
	}
}
