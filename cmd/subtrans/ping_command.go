package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"subtrans/internal/services"
)

func newPingCommand(ctx *commandContext) *cobra.Command {
	var modelOverride string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Verify the translation endpoint, credentials, and model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireTranslationKey(); err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			client := newTranslationClient(cfg, modelOverride, logger)

			timeout := time.Duration(cfg.Translation.TimeoutSeconds) * time.Second
			reqCtx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			started := time.Now()
			if err := client.HealthCheck(reqCtx); err != nil {
				if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
					return services.Wrap(services.ErrTimeout, "ping", cfg.Translation.Backend, client.Model(), err)
				}
				return services.Wrap(services.ErrConfiguration, "ping", cfg.Translation.Backend, client.Model(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s model %s responded in %s\n",
				cfg.Translation.Backend, client.Model(), time.Since(started).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelOverride, "model", "m", "", "Model to check instead of translation.model")
	return cmd
}
