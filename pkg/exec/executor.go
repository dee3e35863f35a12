// Package exec runs built curl commands as subprocesses and parses what
// comes back. The display string is split with shell quoting rules, so the
// argv matches what a terminal would run.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"golang.org/x/time/rate"

	"github.com/blackcoderx/kurl/pkg/command"
)

// Result captures one subprocess run. ExitCode is nil when the process was
// terminated by a signal or never started; Err is set only when the process
// could not be run at all.
type Result struct {
	Command  string
	ExitCode *int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Err      error
}

// Success reports a clean zero exit.
func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode != nil && *r.ExitCode == 0
}

// Executor runs curl commands through a shared rate limiter.
type Executor struct {
	curlPath string
	limiter  *rate.Limiter
}

// New resolves the curl binary and builds an executor. An empty curlPath
// searches PATH. perMinute caps how many executions may start per minute;
// zero or negative disables the cap.
func New(curlPath string, perMinute int) (*Executor, error) {
	if curlPath == "" {
		path, err := exec.LookPath("curl")
		if err != nil {
			return nil, fmt.Errorf("curl executable not found in PATH: %w", err)
		}
		curlPath = path
	}
	limit := rate.Inf
	burst := 1
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
		burst = perMinute
	}
	return &Executor{
		curlPath: curlPath,
		limiter:  rate.NewLimiter(limit, burst),
	}, nil
}

// Execute runs the display-formatted command string and waits for it to
// finish. Cancelling ctx kills the subprocess.
func (e *Executor) Execute(ctx context.Context, display string) Result {
	start := time.Now()
	res := Result{Command: display}

	args, err := command.SplitArgs(display)
	if err != nil {
		res.Err = fmt.Errorf("invalid curl command: %w", err)
		res.Duration = time.Since(start)
		return res
	}
	if len(args) == 0 || args[0] != "curl" {
		res.Err = errors.New("invalid curl command")
		res.Duration = time.Since(start)
		return res
	}

	if err := e.limiter.Wait(ctx); err != nil {
		res.Err = fmt.Errorf("rate limit wait: %w", err)
		res.Duration = time.Since(start)
		return res
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.curlPath, args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	res.Duration = time.Since(start)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		zero := 0
		res.ExitCode = &zero
	case errors.As(err, &exitErr):
		// ExitCode is -1 when a signal killed the process.
		if code := exitErr.ExitCode(); code >= 0 {
			res.ExitCode = &code
		}
	default:
		res.Err = fmt.Errorf("failed to execute command: %w", err)
	}
	return res
}
