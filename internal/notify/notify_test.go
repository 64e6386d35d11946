package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	name string
	args []string
}

type fakeRunner struct {
	mu     sync.Mutex
	calls  []recordedCall
	output []byte
	err    error
}

func (runner *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	runner.calls = append(runner.calls, recordedCall{name: name, args: append([]string(nil), args...)})
	return runner.output, runner.err
}

func testOptions(runner *fakeRunner) Options {
	return Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Runner: runner.run,
	}
}

func TestScriptNotifierEscapesText(t *testing.T) {
	runner := &fakeRunner{}
	notifier := NewScriptNotifier(testOptions(runner))

	err := notifier.Notify(context.Background(), "Say \"hi\"\nthen C:\\rest")
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)

	call := runner.calls[0]
	assert.Equal(t, "osascript", call.name)
	require.Len(t, call.args, 2)
	assert.Equal(t, "-e", call.args[0])
	assert.Equal(t, `display notification "Say \"hi\" then C:\\rest" with title "EyeCare"`, call.args[1])
	assert.Equal(t, "osascript", notifier.Name())
}

func TestEscapeAppleScript(t *testing.T) {
	tests := map[string]string{
		"plain":          "plain",
		`quote"d`:        `quote\"d`,
		"line\r\nbreak":  "line break",
		"one\ntwo\rthree": "one two three",
		`back\slash`:     `back\\slash`,
	}
	for in, want := range tests {
		assert.Equal(t, want, escapeAppleScript(in), "escapeAppleScript(%q)", in)
	}
}

func TestNotifySendArguments(t *testing.T) {
	runner := &fakeRunner{}
	notifier := NewNotifySendNotifier(testOptions(runner))

	text := "-look away from the screen, this message is longer than fifty characters in total"
	require.NoError(t, notifier.Notify(context.Background(), text))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "notify-send", runner.calls[0].name)
	assert.Equal(t, []string{"--app-name=EyeCare", "--", "EyeCare", text}, runner.calls[0].args)
}

func TestCommandFailures(t *testing.T) {
	t.Run("command not found", func(t *testing.T) {
		runner := &fakeRunner{err: fmt.Errorf("exec: %q: %w", "notify-send", exec.ErrNotFound)}
		err := NewNotifySendNotifier(testOptions(runner)).Notify(context.Background(), "hello")
		require.ErrorIs(t, err, ErrCommandNotFound)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		runner := &fakeRunner{err: &exec.ExitError{}, output: []byte("no daemon\n")}
		err := NewScriptNotifier(testOptions(runner)).Notify(context.Background(), "hello")

		var cmdErr *CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, "osascript", cmdErr.Command)
		assert.Equal(t, "no daemon\n", cmdErr.Output)
		assert.Contains(t, cmdErr.Error(), "no daemon")
	})

	t.Run("other runner error", func(t *testing.T) {
		boom := errors.New("boom")
		runner := &fakeRunner{err: boom}
		err := NewNotifySendNotifier(testOptions(runner)).Notify(context.Background(), "hello")
		require.ErrorIs(t, err, boom)
	})
}

func TestExecRunnerReportsExitCode(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false command not available")
	}
	err := runCommand(context.Background(), ExecRunner, "false")
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 1, cmdErr.ExitCode)
}

func TestExecRunnerMissingCommand(t *testing.T) {
	err := runCommand(context.Background(), ExecRunner, "eyecare-no-such-command")
	require.ErrorIs(t, err, ErrCommandNotFound)
}

func TestConsoleNotifier(t *testing.T) {
	var out bytes.Buffer
	notifier := NewConsoleNotifier(&out, Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	require.NoError(t, notifier.Notify(context.Background(), "Look away"))
	require.NoError(t, notifier.Notify(context.Background(), "Stretch"))
	assert.Equal(t, "[EyeCare] Look away\n[EyeCare] Stretch\n", out.String())
	assert.Equal(t, "console", notifier.Name())
}

func TestBeeepNotifierWrapsErrors(t *testing.T) {
	notifier := NewBeeepNotifier(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	var shown []string
	notifier.notify = func(title, message string) error {
		shown = append(shown, title+": "+message)
		if strings.Contains(message, "fail") {
			return errors.New("toast rejected")
		}
		return nil
	}

	require.NoError(t, notifier.Notify(context.Background(), "ok"))
	err := notifier.Notify(context.Background(), "please fail")
	var toastErr *ToastError
	require.ErrorAs(t, err, &toastErr)
	assert.Equal(t, "beeep", toastErr.Backend)
	assert.Equal(t, []string{"EyeCare: ok", "EyeCare: please fail"}, shown)
}

func TestPreview(t *testing.T) {
	short := "short message"
	assert.Equal(t, short, Preview(short))

	long := strings.Repeat("я", 80)
	assert.Equal(t, strings.Repeat("я", 50), Preview(long))
}
