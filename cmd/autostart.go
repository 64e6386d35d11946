package main

import (
	"fmt"
	"os"
	"path/filepath"

	"eyecare/internal/platform"

	"github.com/spf13/cobra"
)

// autostartService is swapped in tests.
var autostartService = platform.NewService

func newAutostartCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage launching EyeCare at login.",
	}

	enable := &cobra.Command{
		Use:   "enable",
		Short: "Start EyeCare automatically when you log in.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := autostartEntry(opts)
			if err != nil {
				return err
			}
			location, err := autostartService().Enable(entry)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Autostart enabled: %s\n", location)
			return nil
		},
	}

	disable := &cobra.Command{
		Use:   "disable",
		Short: "Stop launching EyeCare at login.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := autostartService().Disable(appName); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Autostart disabled")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether EyeCare starts at login.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enabled, err := autostartService().IsEnabled(appName)
			if err != nil {
				return fmt.Errorf("autostart status: %w", err)
			}
			state := "disabled"
			if enabled {
				state = "enabled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Autostart %s\n", state)
			return nil
		},
	}

	cmd.AddCommand(enable, disable, status)
	return cmd
}

// autostartEntry launches the current executable with the flags given to this invocation.
func autostartEntry(opts *rootOptions) (platform.Entry, error) {
	execPath, err := os.Executable()
	if err != nil {
		return platform.Entry{}, fmt.Errorf("resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	entry := platform.Entry{
		Name:     appName,
		ExecPath: execPath,
		Comment:  "Eye rest reminder",
	}
	if opts.lang != "" {
		entry.Args = append(entry.Args, "--lang", opts.lang)
	}
	if opts.configPath != "" {
		configPath, err := filepath.Abs(opts.configPath)
		if err != nil {
			return platform.Entry{}, fmt.Errorf("resolve config path: %w", err)
		}
		entry.Args = append(entry.Args, "--config", configPath)
	}
	return entry, nil
}
