package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/internal/deps"
	"subtrans/internal/services/whisperx"
	"subtrans/internal/transcribe"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check external binaries and the local speech model cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := isTerminal(out)
			local := cfg.Transcription.Backend == config.BackendLocal

			statuses := deps.CheckBinaries(deps.TranscriptionRequirements(whisperx.FFmpegCommand, local))
			rows := make([][]string, 0, len(statuses)+1)
			for _, status := range statuses {
				detail := status.Path
				if !status.Available {
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, statusLabel(status.Available, status.Optional, colorize), status.Description, detail})
			}

			repo := transcribe.ModelRepo(cfg.Transcription.LocalModel)
			model, modelErr := transcribe.CheckLocalModel(cfg.Paths.HFCacheDir, repo)
			modelDetail := model.Path
			switch {
			case modelErr != nil:
				modelDetail = modelErr.Error()
			case !model.Available:
				modelDetail = model.Message
			}
			rows = append(rows, []string{"Model " + repo, statusLabel(model.Available, true, colorize), "WhisperX speech model in the Hugging Face cache", modelDetail})

			fmt.Fprintln(out, renderTable([]string{"Dependency", "Status", "Purpose", "Detail"}, rows, nil, colorize))
			fmt.Fprintf(out, "Transcription backend: %s (local: %s)\n", cfg.Transcription.Backend, yesNo(local))
			fmt.Fprintf(out, "Translation backend: %s (%s)\n", cfg.Translation.Backend, cfg.Translation.Model)

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required dependencies missing; first: %s (%s)", len(missing), missing[0].Name, missing[0].Detail)
			}
			return nil
		},
	}
}
