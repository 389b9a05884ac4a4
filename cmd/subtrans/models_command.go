package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"subtrans/internal/logging"
	"subtrans/internal/services/llm"
)

const modelsTimeout = 15 * time.Second

func newModelsCommand(ctx *commandContext) *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List chat models offered by the translation backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			client := newTranslationClient(cfg, "", logger)

			reqCtx, cancel := context.WithTimeout(cmd.Context(), modelsTimeout)
			defer cancel()

			models, err := client.ListModels(reqCtx)
			if err != nil || len(models) == 0 {
				if err == nil {
					err = errors.New("endpoint returned no models")
				}
				logging.WarnWithContext(logger, "model listing failed; showing defaults", "models_fallback",
					logging.String("url", llm.ModelsURL(cfg.Translation.BaseURL)),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check translation.base_url and translation.api_key"),
					logging.String(logging.FieldImpact, "built-in model list shown"),
				)
				models = llm.DefaultModels()
			}

			models = llm.FormatModels(models)
			rows := make([][]string, 0, len(models))
			for _, m := range models {
				if !showAll && len(rows) >= maxListedModels {
					break
				}
				rows = append(rows, []string{m.ID, m.Name, m.Description})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Description"}, rows, nil, isTerminal(out)))
			if hidden := len(models) - len(rows); hidden > 0 {
				fmt.Fprintf(out, "%d more models hidden (use --all to list them)\n", hidden)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "List every model instead of the first 50")
	return cmd
}

const maxListedModels = 50
