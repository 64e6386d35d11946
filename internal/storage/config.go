package storage

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"eyecare/internal/core/model"
	"eyecare/internal/i18n"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"

	fallbackMessage = "Take a break!"
)

type fileConfig struct {
	Settings settingsSection           `yaml:"settings" toml:"settings"`
	Messages map[string]messageSection `yaml:"messages" toml:"messages"`
}

type settingsSection struct {
	IntervalMinutes any    `yaml:"interval_minutes" toml:"interval_minutes"`
	MessageMode     string `yaml:"message_mode" toml:"message_mode"`
	Lang            string `yaml:"lang" toml:"lang"`
}

type messageSection struct {
	Default string   `yaml:"default" toml:"default"`
	Items   []string `yaml:"items" toml:"items"`
}

// Options configures a Store.
type Options struct {
	Logger  *slog.Logger
	Catalog *i18n.Catalog
	// DetectLanguage returns the desktop language for lang: auto.
	DetectLanguage func() (string, error)
}

// Store reads and writes the reminder configuration file.
type Store struct {
	path    string
	options Options

	mu           sync.Mutex
	langOverride string
}

// NewStore returns a store for path. A path ending in .toml is read and
// written as TOML, anything else as YAML.
func NewStore(path string, options Options) *Store {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Store{path: path, options: options}
}

// DefaultPath returns the config file location under the user config directory.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

// Path returns the config file path.
func (store *Store) Path() string { return store.path }

// SetCatalog switches the language used for log messages.
func (store *Store) SetCatalog(catalog *i18n.Catalog) {
	store.mu.Lock()
	store.options.Catalog = catalog
	store.mu.Unlock()
}

func (store *Store) catalog() *i18n.Catalog {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.options.Catalog
}

// ConfiguredLanguage resolves the effective language without creating the file.
func (store *Store) ConfiguredLanguage(langOverride string) string {
	configured := ""
	if raw, err := os.ReadFile(store.path); err == nil {
		var fileData fileConfig
		if err := store.decode(raw, &fileData); err == nil {
			configured = fileData.Settings.Lang
		}
	}
	if !i18n.IsSupported(configured) {
		configured = i18n.LangAuto
	}
	return i18n.Resolve(langOverride, configured, store.options.DetectLanguage)
}

// Load reads the configuration, creating a default file when none exists.
// Invalid values are replaced with defaults and logged; only I/O and syntax
// errors are returned.
func (store *Store) Load(langOverride string) (model.ReminderConfig, error) {
	store.mu.Lock()
	store.langOverride = langOverride
	store.mu.Unlock()

	if err := store.ensureFile(); err != nil {
		return model.ReminderConfig{}, err
	}

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		return model.ReminderConfig{}, fmt.Errorf("read config file: %w", err)
	}

	var fileData fileConfig
	if err := store.decode(rawData, &fileData); err != nil {
		return model.ReminderConfig{}, err
	}

	config := store.apply(fileData, langOverride)
	store.options.Logger.Debug(store.catalog().T("config_loaded", i18n.Data{
		"Lang":     config.Language,
		"Interval": config.IntervalMinutes,
		"Mode":     config.Mode,
		"Count":    len(config.Messages),
	}))
	return config, nil
}

// SaveInterval stores minutes as interval_minutes, keeping the rest of the file.
func (store *Store) SaveInterval(minutes int) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	var fileData fileConfig
	rawData, err := os.ReadFile(store.path)
	switch {
	case err == nil:
		if err := store.decode(rawData, &fileData); err != nil {
			return err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("read config file: %w", err)
	}

	fileData.Settings.IntervalMinutes = model.ClampInterval(minutes)
	serialized, err := store.encode(fileData)
	if err != nil {
		return err
	}
	return writeFileAtomic(store.path, serialized, 0o644)
}

// PersistInterval saves minutes and logs failures instead of returning them.
func (store *Store) PersistInterval(minutes int) {
	if err := store.SaveInterval(minutes); err != nil {
		store.options.Logger.Error(store.catalog().T("save_interval_error"), "path", store.path, "err", err)
	}
}

func (store *Store) isTOML() bool {
	return strings.EqualFold(filepath.Ext(store.path), ".toml")
}

func (store *Store) decode(rawData []byte, fileData *fileConfig) error {
	if store.isTOML() {
		if _, err := toml.Decode(string(rawData), fileData); err != nil {
			return fmt.Errorf("parse config toml: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(rawData, fileData); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

func (store *Store) encode(fileData fileConfig) ([]byte, error) {
	if store.isTOML() {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(fileData); err != nil {
			return nil, fmt.Errorf("marshal config toml: %w", err)
		}
		return buf.Bytes(), nil
	}
	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal config yaml: %w", err)
	}
	return serialized, nil
}

func (store *Store) ensureFile() error {
	_, err := os.Stat(store.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	store.options.Logger.Info(store.catalog().T("config_created", i18n.Data{"Path": store.path}))
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	template := defaultYAML
	if store.isTOML() {
		template = defaultTOML
	}
	if err := writeFileAtomic(store.path, []byte(template), 0o644); err != nil {
		return err
	}
	return nil
}

func (store *Store) apply(fileData fileConfig, langOverride string) model.ReminderConfig {
	logger := store.options.Logger
	catalog := store.catalog()

	interval, ok := parseInterval(fileData.Settings.IntervalMinutes)
	switch {
	case !ok || interval < model.MinInterval:
		logger.Warn(catalog.T("interval_invalid", i18n.Data{"Interval": fileData.Settings.IntervalMinutes, "Default": model.DefaultInterval}))
		interval = model.DefaultInterval
	case interval > model.MaxInterval:
		logger.Warn(catalog.T("interval_too_large", i18n.Data{"Interval": interval, "Max": model.MaxInterval}))
		interval = model.MaxInterval
	}

	rawMode := strings.TrimSpace(fileData.Settings.MessageMode)
	mode, known := model.ParseMode(rawMode)
	switch {
	case rawMode == "":
		mode = model.ModeRandom
	case !known:
		logger.Warn(catalog.T("mode_unknown", i18n.Data{"Mode": rawMode, "Valid": model.Modes}))
		mode = model.ModeSequential
	}

	langSetting := strings.ToLower(strings.TrimSpace(fileData.Settings.Lang))
	if langSetting == "" {
		langSetting = i18n.LangAuto
	}
	if !i18n.IsSupported(langSetting) {
		logger.Warn(catalog.T("lang_unknown", i18n.Data{"Lang": langSetting, "Valid": []string{i18n.LangAuto, i18n.LangRussian, i18n.LangEnglish}}))
		langSetting = i18n.LangAuto
	}
	lang := i18n.Resolve(langOverride, langSetting, store.options.DetectLanguage)

	return model.ReminderConfig{
		IntervalMinutes: interval,
		Mode:            mode,
		Messages:        collectMessages(fileData.Messages, lang),
		Language:        lang,
	}
}

// parseInterval accepts the numeric shapes YAML and TOML decoders produce, and numeric strings.
func parseInterval(raw any) (int, bool) {
	switch value := raw.(type) {
	case nil:
		return model.DefaultInterval, true
	case int:
		return value, true
	case int64:
		return clampInt64(value), true
	case uint64:
		if value > math.MaxInt32 {
			return math.MaxInt32, true
		}
		return int(value), true
	case float64:
		if value != math.Trunc(value) {
			return 0, false
		}
		return clampInt64(int64(value)), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func clampInt64(value int64) int {
	if value > math.MaxInt32 {
		return math.MaxInt32
	}
	if value < math.MinInt32 {
		return math.MinInt32
	}
	return int(value)
}

func collectMessages(sections map[string]messageSection, lang string) []string {
	section, ok := sections[lang]
	if !ok {
		section = sections[i18n.LangEnglish]
	}

	defaultMessage := strings.TrimSpace(section.Default)
	if defaultMessage == "" {
		defaultMessage = fallbackMessage
	}
	messages := []string{defaultMessage}
	for _, item := range section.Items {
		for _, line := range strings.Split(item, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			messages = append(messages, line)
		}
	}
	return messages
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close config file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	return nil
}
