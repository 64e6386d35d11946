package main

import (
	"context"
	"fmt"
	"time"

	"eyecare/internal/core/rotation"
	"eyecare/internal/notify"

	"github.com/spf13/cobra"
)

const checkTimeout = 30 * time.Second

func newCheckCommand(opts *rootOptions) *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Send one reminder through the selected backend and exit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := bootstrap(opts)
			if err != nil {
				return err
			}

			text := message
			if text == "" {
				text, _, err = rotation.Next(env.config.Mode, env.config.Messages, 0, nil)
				if err != nil {
					return err
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
			defer cancel()
			if err := env.backend.Notify(ctx, text); err != nil {
				return fmt.Errorf("send notification via %s: %w", env.backend.Name(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent via %s: %s\n", env.backend.Name(), notify.Preview(text))
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "text to send instead of a configured message")
	return cmd
}
