// Package process launches the external map generator and captures its output.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	// ErrSpawn is returned when the OS could not start the interpreter.
	ErrSpawn = errors.New("process spawn failed")
	// ErrTextDecode is returned when captured output is not valid UTF-8.
	ErrTextDecode = errors.New("output is not valid UTF-8")
	// ErrExit is matched by *ExitError.
	ErrExit = errors.New("generator exited with failure status")
)

// Command describes one generator invocation: Interpreter Generator -p Script.
type Command struct {
	Interpreter string
	Generator   string
	Script      string
}

// Args returns the argument list passed to the interpreter.
func (c Command) Args() []string {
	return []string{c.Generator, "-p", c.Script}
}

// String renders the command line the way it is shown to the user.
func (c Command) String() string {
	return c.Interpreter + " " + strings.Join(c.Args(), " ")
}

// Result is the captured outcome of a finished process.
// Output holds stdout when Success is true and stderr otherwise.
type Result struct {
	Success  bool
	ExitCode int
	Output   []byte
}

// Text returns Output as a string, failing on invalid UTF-8 instead of
// substituting replacement characters.
func (r Result) Text() (string, error) {
	if !utf8.Valid(r.Output) {
		return "", ErrTextDecode
	}
	return string(r.Output), nil
}

// maxStderrLen bounds the stderr excerpt in ExitError messages, in bytes.
const maxStderrLen = 200

// ExitError reports a generator that exited with a non-zero status.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := strings.ToValidUTF8(strings.TrimSpace(e.Stderr), "\uFFFD")
	if msg == "" {
		return fmt.Sprintf("generator exited with status %d", e.Code)
	}
	if len(msg) > maxStderrLen {
		cut := maxStderrLen
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut] + "..."
	}
	return fmt.Sprintf("generator exited with status %d: %s", e.Code, msg)
}

// Is lets errors.Is(err, ErrExit) match any *ExitError.
func (e *ExitError) Is(target error) bool {
	return target == ErrExit
}

// Runner runs a Command to completion. Implementations must honour ctx
// cancellation by terminating the child process.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, cmd Command) (Result, error)

// Run calls f(ctx, cmd).
func (f RunnerFunc) Run(ctx context.Context, cmd Command) (Result, error) {
	return f(ctx, cmd)
}

const waitDelay = 2 * time.Second

// ExecRunner runs commands as OS processes.
type ExecRunner struct {
	// Dir is the working directory of the child; empty means the current one.
	Dir string
}

// NewExecRunner returns a runner executing in the current directory.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run spawns exactly one process and blocks until it exits or ctx is done.
// A spawn failure is wrapped in ErrSpawn. A non-zero exit is returned both as
// a failed Result (carrying stderr) and as an *ExitError.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	c := exec.CommandContext(ctx, cmd.Interpreter, cmd.Args()...)
	c.Dir = r.Dir
	// Grandchildren may hold the output pipes open after a kill.
	c.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Start(); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrSpawn, cmd.Interpreter, err)
	}

	err := c.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res := Result{Success: false, ExitCode: exitErr.ExitCode(), Output: stderr.Bytes()}
			return res, &ExitError{Code: res.ExitCode, Stderr: stderr.String()}
		}
		return Result{}, fmt.Errorf("waiting for %s: %w", cmd.Interpreter, err)
	}

	return Result{Success: true, ExitCode: 0, Output: stdout.Bytes()}, nil
}
