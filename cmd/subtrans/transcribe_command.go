package main

import (
	"bufio"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/internal/services/whisperx"
	"subtrans/internal/transcribe"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var keepFiles bool

	cmd := &cobra.Command{
		Use:   "transcribe <id>",
		Short: "Transcribe <audio_dir>/<id>.m4a and print SRT to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			backend, err := buildTranscriptionBackend(cfg, logger, keepFiles)
			if err != nil {
				return err
			}

			runCtx, stop := signalContext(cmd)
			defer stop()

			out := bufio.NewWriter(cmd.OutOrStdout())
			transcriber := transcribe.New(backend, cfg.Paths.AudioDir, logger)
			if _, err := transcriber.Run(runCtx, args[0], out); err != nil {
				return err
			}
			if err := out.Flush(); err != nil {
				return fmt.Errorf("flush stdout: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepFiles, "keep-intermediate", false, "Keep the extracted WAV and WhisperX JSON (local backend)")
	return cmd
}

func buildTranscriptionBackend(cfg *config.Config, logger *slog.Logger, keepFiles bool) (transcribe.Backend, error) {
	if err := cfg.RequireTranscriptionKey(); err != nil {
		return nil, err
	}
	switch cfg.Transcription.Backend {
	case config.BackendLocal:
		if err := cfg.EnsureWorkDir(); err != nil {
			return nil, err
		}
		service := whisperx.NewService(whisperx.Config{
			Model:       cfg.Transcription.LocalModel,
			CUDAEnabled: cfg.Transcription.CUDAEnabled,
			VADMethod:   cfg.Transcription.VADMethod,
			HFToken:     cfg.Transcription.HFToken,
		}, whisperx.FFmpegCommand)
		local := transcribe.NewLocal(service, cfg.Paths.WorkDir, cfg.Transcription.Language, logger)
		local.KeepIntermediate(keepFiles)
		return local, nil
	default:
		return transcribe.NewHosted(transcribe.HostedConfig{
			APIKey:   cfg.Transcription.APIKey,
			BaseURL:  cfg.Transcription.BaseURL,
			Model:    cfg.Transcription.Model,
			Language: cfg.Transcription.Language,
		}, logger)
	}
}
