// Package engine invokes the external workflow engine binary.
package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/conn-castle/cylc-layer/internal/logging"
	"github.com/conn-castle/cylc-layer/internal/messages"
)

// Engine actions issued by cylc-layer.
const (
	ActionInstall  = "install"
	ActionPlay     = "play"
	ActionStop     = "stop"
	ActionClean    = "clean"
	ActionValidate = "validate"
)

// InvocationError reports an engine command that failed to start or exited
// with a nonzero status.
type InvocationError struct {
	Action   string
	Target   string
	ExitCode int
	Err      error
}

func (e *InvocationError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf(messages.EngineStartFailedFmt, e.Action, e.Target, e.Err)
	}
	return fmt.Sprintf(messages.EngineExitStatusFmt, e.Action, e.Target, e.ExitCode)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// CLI runs engine subcommands as child processes without a shell.
type CLI struct {
	// Command is the argv prefix, e.g. ["cylc"] or ["conda", "run", "-n", "env", "cylc"].
	Command []string
	// Env is the child environment; nil inherits the current process environment.
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
	Logger logging.Logger
}

var runCommand = func(cmd *exec.Cmd) error { return cmd.Run() }

// Invoke runs `<command> <action> <target> <opts...>`, streaming output, and
// blocks until the process exits.
func (c *CLI) Invoke(action string, target string, opts ...string) error {
	if len(c.Command) == 0 {
		return &InvocationError{Action: action, Target: target, ExitCode: -1, Err: errors.New(messages.EngineCommandRequired)}
	}
	args := append([]string{}, c.Command[1:]...)
	args = append(args, action, target)
	args = append(args, opts...)

	log := logging.OrNop(c.Logger)
	log.Info(messages.EngineExecutingLog, "argv", strings.Join(append([]string{c.Command[0]}, args...), " "))

	cmd := exec.Command(c.Command[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = writerOr(c.Stdout, os.Stdout)
	cmd.Stderr = writerOr(c.Stderr, os.Stderr)
	cmd.Env = c.Env

	if err := runCommand(cmd); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code <= 0 {
				code = 1
			}
			log.Error(messages.EngineFailedLog, "action", action, "target", target, "status", code)
			return &InvocationError{Action: action, Target: target, ExitCode: code, Err: err}
		}
		log.Error(messages.EngineFailedLog, "action", action, "target", target, "err", err)
		return &InvocationError{Action: action, Target: target, ExitCode: -1, Err: err}
	}
	return nil
}

// LookPath resolves the engine executable (the first argv element).
func (c *CLI) LookPath() (string, error) {
	if len(c.Command) == 0 {
		return "", errors.New(messages.EngineCommandRequired)
	}
	return exec.LookPath(c.Command[0])
}

// ExitCode returns the engine exit status carried by err, if any.
func ExitCode(err error) (int, bool) {
	var invErr *InvocationError
	if !errors.As(err, &invErr) {
		return 0, false
	}
	if invErr.ExitCode < 0 {
		return 1, true
	}
	return invErr.ExitCode, true
}

func writerOr(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
