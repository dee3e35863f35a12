package exec

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/time/rate"
)

func newTestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 1)
}

func TestExecute_RejectsNonCurlCommand(t *testing.T) {
	e := &Executor{curlPath: "/bin/echo", limiter: newTestLimiter()}

	tests := []string{"", "wget https://example.com", "   "}
	for _, display := range tests {
		res := e.Execute(context.Background(), display)
		if res.Err == nil {
			t.Errorf("Execute(%q).Err = nil, want invalid command error", display)
		}
		if res.ExitCode != nil {
			t.Errorf("Execute(%q).ExitCode = %d, want nil", display, *res.ExitCode)
		}
	}
}

func TestExecute_RejectsMalformedQuoting(t *testing.T) {
	e := &Executor{curlPath: "/bin/echo", limiter: newTestLimiter()}

	res := e.Execute(context.Background(), `curl -d 'no closing quote`)
	if res.Err == nil {
		t.Error("Execute with unterminated quote reported no error")
	}
	if res.ExitCode != nil {
		t.Errorf("ExitCode = %d, want nil when nothing ran", *res.ExitCode)
	}
}

func TestExecute_CapturesStdoutAndExit(t *testing.T) {
	// Substitute echo for the real binary; the argv split still applies.
	e := &Executor{curlPath: "/bin/echo", limiter: newTestLimiter()}

	res := e.Execute(context.Background(), `curl -s "hello world"`)
	if res.Err != nil {
		t.Fatalf("Execute error: %v", res.Err)
	}
	if !res.Success() {
		t.Fatalf("Success = false, exit = %v", res.ExitCode)
	}
	if got := strings.TrimSpace(res.Stdout); got != "-s hello world" {
		t.Errorf("Stdout = %q, want %q", got, "-s hello world")
	}
}

func TestExecute_NonZeroExit(t *testing.T) {
	e := &Executor{curlPath: "/bin/false", limiter: newTestLimiter()}

	res := e.Execute(context.Background(), "curl")
	if res.Err != nil {
		t.Fatalf("Execute error: %v", res.Err)
	}
	if res.ExitCode == nil || *res.ExitCode == 0 {
		t.Errorf("ExitCode = %v, want non-zero", res.ExitCode)
	}
	if res.Success() {
		t.Error("Success = true for non-zero exit")
	}
}

func TestExecute_CancelledContext(t *testing.T) {
	e := &Executor{curlPath: "/bin/echo", limiter: newTestLimiter()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := e.Execute(ctx, "curl hello")
	if res.Err == nil && res.ExitCode != nil && *res.ExitCode == 0 {
		t.Error("Execute on cancelled context reported success")
	}
}

func TestNew_MissingCurl(t *testing.T) {
	if _, err := New("/nonexistent/definitely-not-curl", 0); err != nil {
		// An explicit path is trusted as-is, execution reports the failure.
		t.Errorf("New with explicit path = %v, want nil", err)
	}
}
