package ocr

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/AirplaneConcept/BatchOCR/pkg/logger"
)

// ExecRunner executes external commands via os/exec. It is the only
// production implementation of interfaces.CommandRunner; tests supply
// fakes instead.
type ExecRunner struct {
	log *logger.Logger
}

// NewExecRunner creates a runner that logs command timing and failures
func NewExecRunner(log *logger.Logger) *ExecRunner {
	return &ExecRunner{log: log}
}

// Run executes the command and returns its captured stdout and stderr
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)

	if err != nil {
		r.log.Debug("exec failed: %s %s (%dms): %v", name, strings.Join(args, " "), dur.Milliseconds(), err)
	} else {
		r.log.Debug("exec ok: %s %s (%dms, %d bytes stdout)", name, strings.Join(args, " "), dur.Milliseconds(), out.Len())
	}

	return out.Bytes(), errb.Bytes(), err
}

// exitCode maps a Run error to a process exit status: 0 for success,
// the child's code for a normal nonzero exit, -1 when the process could
// not be started or was killed.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}

// truncate caps diagnostic text before it is stored in a task record
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
