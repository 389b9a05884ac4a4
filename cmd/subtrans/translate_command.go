package main

import (
	"bufio"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/internal/logging"
	"subtrans/internal/services/llm"
	"subtrans/internal/subtitles"
	"subtrans/internal/translate"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var modelOverride string

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate an English SRT document on stdin to Korean on stdout",
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

			doc, err := subtitles.ParseDocument(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read srt from stdin: %w", err)
			}
			if doc.Skipped > 0 {
				logging.WarnWithContext(logger, "skipped malformed subtitle blocks", "srt_blocks_skipped",
					logging.Int("skipped", doc.Skipped),
					logging.String(logging.FieldErrorHint, "blocks need an index line, a timing line, and text"),
					logging.String(logging.FieldImpact, "skipped blocks are missing from the output"),
				)
			}

			runCtx, stop := signalContext(cmd)
			defer stop()

			client := newTranslationClient(cfg, modelOverride, logger)
			out := bufio.NewWriter(cmd.OutOrStdout())
			translator := translate.New(client, logger, cfg.Translation.ProgressInterval)
			if _, err := translator.Run(runCtx, doc.Entries, out); err != nil {
				return err
			}
			return out.Flush()
		},
	}

	cmd.Flags().StringVarP(&modelOverride, "model", "m", "", "Override translation.model for this run")
	return cmd
}

func newTranslationClient(cfg *config.Config, modelOverride string, logger *slog.Logger) *llm.Client {
	model := cfg.Translation.Model
	if modelOverride != "" {
		model = modelOverride
	}
	logger.Debug("translation endpoint",
		logging.String("backend", cfg.Translation.Backend),
		logging.String("base_url", cfg.Translation.BaseURL),
		logging.String("model", model),
	)
	return llm.NewClient(llm.Config{
		APIKey:         cfg.Translation.APIKey,
		BaseURL:        cfg.Translation.BaseURL,
		Model:          model,
		Referer:        cfg.Translation.Referer,
		Title:          cfg.Translation.Title,
		TimeoutSeconds: cfg.Translation.TimeoutSeconds,
		Temperature:    cfg.Translation.Temperature,
		MaxTokens:      cfg.Translation.MaxTokens,
	})
}
