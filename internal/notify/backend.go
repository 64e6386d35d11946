// Package notify displays reminder text through the platform's native
// notification channel.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"eyecare/internal/i18n"
)

// Title is shown as the notification heading on every backend.
const Title = "EyeCare"

const previewRunes = 50

// ErrCommandNotFound indicates the external notification command is not installed.
var ErrCommandNotFound = errors.New("notification command not found")

// Backend displays text to the user. Implementations are safe for concurrent use.
type Backend interface {
	Name() string
	Notify(ctx context.Context, text string) error
}

// CommandError reports a notification command that exited unsuccessfully.
type CommandError struct {
	Command  string
	ExitCode int
	Output   string
	Err      error
}

func (err *CommandError) Error() string {
	output := strings.TrimSpace(err.Output)
	if output == "" {
		return fmt.Sprintf("%s exited with code %d", err.Command, err.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", err.Command, err.ExitCode, output)
}

func (err *CommandError) Unwrap() error { return err.Err }

// ToastError reports a failure inside a native notification API.
type ToastError struct {
	Backend string
	Err     error
}

func (err *ToastError) Error() string {
	return fmt.Sprintf("%s: %v", err.Backend, err.Err)
}

func (err *ToastError) Unwrap() error { return err.Err }

// Runner executes an external command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Options configures backend logging.
type Options struct {
	Logger  *slog.Logger
	Catalog *i18n.Catalog
	Runner  Runner
}

func (options Options) logger() *slog.Logger {
	if options.Logger != nil {
		return options.Logger
	}
	return slog.Default()
}

func (options Options) runner() Runner {
	if options.Runner != nil {
		return options.Runner
	}
	return ExecRunner
}

// Preview shortens text for log lines. The notification itself is never truncated.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes])
}

// runCommand executes name through runner and maps failures to CommandError or ErrCommandNotFound.
func runCommand(ctx context.Context, runner Runner, name string, args ...string) error {
	output, err := runner(ctx, name, args...)
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%s: %w", name, ErrCommandNotFound)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{Command: name, ExitCode: exitErr.ExitCode(), Output: string(output), Err: err}
	}
	return &CommandError{Command: name, ExitCode: -1, Output: string(output), Err: err}
}

// commandNotifier is the shared shape of backends that shell out to a command.
type commandNotifier struct {
	name    string
	command string
	options Options
	args    func(text string) []string
}

func (notifier *commandNotifier) Name() string { return notifier.name }

func (notifier *commandNotifier) Notify(ctx context.Context, text string) error {
	logger := notifier.options.logger()
	catalog := notifier.options.Catalog
	logger.Debug(catalog.T("notification_sending", i18n.Data{"Backend": notifier.command, "Msg": Preview(text)}))

	if err := runCommand(ctx, notifier.options.runner(), notifier.command, notifier.args(text)...); err != nil {
		return err
	}
	logger.Debug(catalog.T("notification_sent"))
	return nil
}
