package i18n

import golocale "github.com/jeandeaual/go-locale"

// DetectSystemLanguage returns the user's desktop language, e.g. "ru" or "en".
func DetectSystemLanguage() (string, error) {
	return golocale.GetLanguage()
}
