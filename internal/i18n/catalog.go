// Package i18n provides the localized strings used in logs, the tray menu and
// user-facing notifications.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	LangEnglish = "en"
	LangRussian = "ru"
	LangAuto    = "auto"
)

// Languages lists the supported catalog languages.
var Languages = []string{LangRussian, LangEnglish}

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *goi18n.Bundle
	bundleErr  error

	fallbackOnce    sync.Once
	fallbackCatalog *Catalog
)

// Data carries template values for a message.
type Data map[string]any

// Catalog resolves message IDs for one language.
type Catalog struct {
	language  string
	localizer *goi18n.Localizer
}

// New returns a catalog for lang. Unsupported languages use English.
func New(lang string) (*Catalog, error) {
	loaded, err := loadBundle()
	if err != nil {
		return nil, err
	}
	normalized := Normalize(lang)
	return &Catalog{
		language:  normalized,
		localizer: goi18n.NewLocalizer(loaded, normalized, LangEnglish),
	}, nil
}

// Default returns the English catalog.
func Default() *Catalog {
	fallbackOnce.Do(func() {
		catalog, err := New(LangEnglish)
		if err != nil {
			catalog = &Catalog{language: LangEnglish}
		}
		fallbackCatalog = catalog
	})
	return fallbackCatalog
}

// Language returns the catalog language code.
func (catalog *Catalog) Language() string {
	if catalog == nil {
		return LangEnglish
	}
	return catalog.language
}

// T returns the message for id, or id itself when it is unknown.
// A nil catalog behaves like Default().
func (catalog *Catalog) T(id string, data ...Data) string {
	if catalog == nil {
		catalog = Default()
	}
	if catalog.localizer == nil {
		return id
	}

	config := &goi18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		config.TemplateData = map[string]any(data[0])
	}
	text, err := catalog.localizer.Localize(config)
	if err != nil && text == "" {
		return id
	}
	return text
}

// Normalize maps a language code such as "ru_RU" or "en-GB" to a supported catalog language.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if strings.HasPrefix(lang, LangRussian) {
		return LangRussian
	}
	return LangEnglish
}

// IsSupported reports whether lang is "auto" or a catalog language.
func IsSupported(lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == LangAuto {
		return true
	}
	for _, known := range Languages {
		if lang == known {
			return true
		}
	}
	return false
}

// Resolve picks the effective language: override, then configured, then the
// detected system language. "auto" and empty values defer to the next source.
func Resolve(override, configured string, detect func() (string, error)) string {
	for _, candidate := range []string{override, configured} {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate != "" && candidate != LangAuto {
			return Normalize(candidate)
		}
	}
	if detect == nil {
		return LangEnglish
	}
	system, err := detect()
	if err != nil {
		return LangEnglish
	}
	return Normalize(system)
}

func loadBundle() (*goi18n.Bundle, error) {
	bundleOnce.Do(func() {
		loaded := goi18n.NewBundle(language.English)
		loaded.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

		entries, err := fs.ReadDir(localeFS, "locales")
		if err != nil {
			bundleErr = fmt.Errorf("read locales: %w", err)
			return
		}
		for _, entry := range entries {
			name := path.Join("locales", entry.Name())
			raw, err := localeFS.ReadFile(name)
			if err != nil {
				bundleErr = fmt.Errorf("read locale %s: %w", name, err)
				return
			}
			if _, err := loaded.ParseMessageFileBytes(raw, entry.Name()); err != nil {
				bundleErr = fmt.Errorf("parse locale %s: %w", name, err)
				return
			}
		}
		bundle = loaded
	})
	return bundle, bundleErr
}
