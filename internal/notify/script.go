package notify

import (
	"fmt"
	"strings"
)

var appleScriptEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
)

// ScriptNotifier shows notifications on macOS through osascript.
type ScriptNotifier struct {
	commandNotifier
}

// NewScriptNotifier returns the macOS backend.
func NewScriptNotifier(options Options) *ScriptNotifier {
	return &ScriptNotifier{commandNotifier{
		name:    "osascript",
		command: "osascript",
		options: options,
		args: func(text string) []string {
			return []string{"-e", appleScript(text)}
		},
	}}
}

func appleScript(text string) string {
	return fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(text), escapeAppleScript(Title))
}

// escapeAppleScript makes text safe inside an AppleScript string literal.
func escapeAppleScript(text string) string {
	return appleScriptEscaper.Replace(text)
}
