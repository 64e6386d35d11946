package notify

import (
	"context"

	"eyecare/internal/i18n"

	"github.com/gen2brain/beeep"
)

// BeeepNotifier is the legacy Windows backend. beeep falls back to a tray
// balloon tip when toast notifications cannot be shown.
type BeeepNotifier struct {
	options Options
	notify  func(title, message string) error
}

// NewBeeepNotifier returns the legacy toast backend.
func NewBeeepNotifier(options Options) *BeeepNotifier {
	beeep.AppName = Title
	return &BeeepNotifier{options: options, notify: func(title, message string) error {
		return beeep.Notify(title, message, "")
	}}
}

func (notifier *BeeepNotifier) Name() string { return "beeep" }

func (notifier *BeeepNotifier) Notify(_ context.Context, text string) error {
	logger := notifier.options.logger()
	catalog := notifier.options.Catalog
	logger.Debug(catalog.T("notification_sending", i18n.Data{"Backend": notifier.Name(), "Msg": Preview(text)}))
	if err := notifier.notify(Title, text); err != nil {
		return &ToastError{Backend: notifier.Name(), Err: err}
	}
	logger.Debug(catalog.T("notification_sent"))
	return nil
}
