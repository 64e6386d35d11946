package notify

// NotifySendNotifier shows notifications through the freedesktop notification
// daemon using notify-send.
type NotifySendNotifier struct {
	commandNotifier
}

// NewNotifySendNotifier returns the Linux backend.
func NewNotifySendNotifier(options Options) *NotifySendNotifier {
	return &NotifySendNotifier{commandNotifier{
		name:    "notify-send",
		command: "notify-send",
		options: options,
		args: func(text string) []string {
			// "--" keeps text that starts with a dash from being read as an option.
			return []string{"--app-name=" + Title, "--", Title, text}
		},
	}}
}
