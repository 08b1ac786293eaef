package apply

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Runner executes host commands.
type Runner interface {
	// Run executes name with args and returns its combined output. A non-zero
	// exit is reported as *CommandError.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// CommandError is a command that ran and exited non-zero, or failed to start.
type CommandError struct {
	Command  string
	ExitCode int
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, out)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// exitCode returns the exit status carried by err, or -1.
func exitCode(err error) int {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Timeout bounds each command. Zero means no limit beyond ctx.
	Timeout time.Duration
	// Env is the command environment. Nil means the current environment.
	Env []string
}

// NewExecRunner returns an ExecRunner with a 5 minute timeout, long enough
// for a package install.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Timeout: 5 * time.Minute}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = r.Env
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	// Fixed locale so command output parses the same everywhere.
	cmd.Env = append(cmd.Env, "LC_ALL=C")

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if err == nil {
		return out.String(), nil
	}

	cmdErr := &CommandError{
		Command:  strings.Join(append([]string{name}, args...), " "),
		ExitCode: -1,
		Output:   out.String(),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	return out.String(), cmdErr
}
