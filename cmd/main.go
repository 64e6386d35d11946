package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"eyecare/internal/core/model"
	"eyecare/internal/i18n"
	"eyecare/internal/notify"
	"eyecare/internal/storage"

	"github.com/charmbracelet/fang"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

const (
	appName = "EyeCare"
	appID   = "com.eyecare.reminder"

	logLevelEnv = "EYECARE_LOG_LEVEL"
)

var version = "dev"

// selectBackend is swapped in tests.
var selectBackend = func(options notify.Options) notify.Backend {
	return notify.Select(notify.SystemProbe(), options)
}

type rootOptions struct {
	lang       string
	verbose    bool
	configPath string
}

type environment struct {
	logger  *slog.Logger
	catalog *i18n.Catalog
	store   *storage.Store
	config  model.ReminderConfig
	backend notify.Backend
}

func main() {
	if err := fang.Execute(context.Background(), newRootCommand(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "eyecare",
		Short: "Eye rest reminder that lives in the system tray.",
		Long: `eyecare reminds you to rest your eyes with the 20-20-20 rule: every
few minutes it shows a desktop notification asking you to look away from the
screen. Pause, "check now" and the interval are controlled from the tray icon.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if opts.lang != "" && !i18n.IsSupported(opts.lang) {
				return fmt.Errorf("unsupported language %q: use ru, en or auto", opts.lang)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTray(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.lang, "lang", "", "interface language: ru, en or auto")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&opts.configPath, "config", "", "config file path (.yaml or .toml)")

	cmd.AddCommand(newAutostartCommand(opts), newCheckCommand(opts))
	return cmd
}

// bootstrap sets up logging, language, configuration and the notification backend.
func bootstrap(opts *rootOptions) (*environment, error) {
	logger := newLogger(opts.verbose, os.Getenv(logLevelEnv))

	path := opts.configPath
	if path == "" {
		defaultPath, err := storage.DefaultPath(appName)
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	store := storage.NewStore(path, storage.Options{
		Logger:         logger,
		DetectLanguage: i18n.DetectSystemLanguage,
	})
	catalog, err := i18n.New(store.ConfiguredLanguage(opts.lang))
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	store.SetCatalog(catalog)
	logger.Info(catalog.T("startup"), "version", version)

	config, err := store.Load(opts.lang)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	return &environment{
		logger:  logger,
		catalog: catalog,
		store:   store,
		config:  config,
		backend: selectBackend(notify.Options{Logger: logger, Catalog: catalog}),
	}, nil
}

func newLogger(verbose bool, envLevel string) *slog.Logger {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel(verbose, envLevel),
		TimeFormat: time.DateTime,
	}))
	slog.SetDefault(logger)
	return logger
}

// logLevel returns INFO, or DEBUG when verbose; a valid envLevel overrides both.
func logLevel(verbose bool, envLevel string) slog.Level {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if envLevel = strings.TrimSpace(envLevel); envLevel != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(envLevel)); err == nil {
			level = parsed
		}
	}
	return level
}
