package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"eyecare/internal/i18n"
)

// ConsoleNotifier prints notifications to a writer. It is the last-resort backend.
type ConsoleNotifier struct {
	mu      sync.Mutex
	out     io.Writer
	options Options
}

// NewConsoleNotifier returns a console backend writing to out, or stdout when out is nil.
func NewConsoleNotifier(out io.Writer, options Options) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{out: out, options: options}
}

func (notifier *ConsoleNotifier) Name() string { return "console" }

func (notifier *ConsoleNotifier) Notify(_ context.Context, text string) error {
	notifier.mu.Lock()
	_, err := fmt.Fprintf(notifier.out, "[%s] %s\n", Title, text)
	notifier.mu.Unlock()
	if err != nil {
		return fmt.Errorf("console notify: %w", err)
	}
	notifier.options.logger().Debug(notifier.options.Catalog.T("notification_console", i18n.Data{"Msg": Preview(text)}))
	return nil
}
