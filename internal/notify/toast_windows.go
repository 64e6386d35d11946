//go:build windows

package notify

import (
	"context"
	"os/exec"

	"eyecare/internal/i18n"

	toast "git.sr.ht/~jackmordaunt/go-toast"
	"golang.org/x/sys/windows"
)

// ToastNotifier shows native Windows 10+ toast notifications.
type ToastNotifier struct {
	options Options
}

func newModernToast(options Options) (Backend, bool) {
	version := windows.RtlGetVersion()
	if version == nil || version.MajorVersion < 10 {
		return nil, false
	}
	return &ToastNotifier{options: options}, true
}

func newLegacyToast(options Options) (Backend, bool) {
	if _, err := exec.LookPath("explorer.exe"); err != nil {
		return nil, false
	}
	return NewBeeepNotifier(options), true
}

func (notifier *ToastNotifier) Name() string { return "toast" }

func (notifier *ToastNotifier) Notify(_ context.Context, text string) error {
	logger := notifier.options.logger()
	catalog := notifier.options.Catalog
	logger.Debug(catalog.T("notification_sending", i18n.Data{"Backend": notifier.Name(), "Msg": Preview(text)}))

	notification := toast.Notification{
		AppID: Title,
		Title: Title,
		Body:  text,
	}
	if err := notification.Push(); err != nil {
		return &ToastError{Backend: notifier.Name(), Err: err}
	}
	logger.Debug(catalog.T("notification_sent"))
	return nil
}
