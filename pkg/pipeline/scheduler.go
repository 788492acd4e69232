package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/AirplaneConcept/BatchOCR/pkg/types"
)

// Scheduler fans tasks out over a bounded worker pool and hands
// completed results, in completion order, to a single consumer. The
// consumer callback is the only place aggregate counters and the log
// handle are touched, so they need no locking.
type Scheduler struct {
	task     *Task
	parallel int
}

// NewScheduler creates a scheduler capped at parallel concurrent tasks
func NewScheduler(task *Task, parallel int) *Scheduler {
	if parallel < 1 {
		parallel = 1
	}
	return &Scheduler{task: task, parallel: parallel}
}

// Run processes every file and invokes consume once per completed task.
// Tasks never abort the run: every failure is a terminal outcome inside
// its result.
func (s *Scheduler) Run(ctx context.Context, files []string, consume func(types.TaskResult)) {
	results := make(chan types.TaskResult)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	go func() {
		for _, f := range files {
			src := f
			g.Go(func() error {
				results <- s.task.Process(gctx, src)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	for res := range results {
		consume(res)
	}
}
