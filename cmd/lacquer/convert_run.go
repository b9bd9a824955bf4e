package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lacquer/internal/config"
	"lacquer/internal/convert"
	"lacquer/internal/encoder"
	"lacquer/internal/logging"
	"lacquer/internal/plan"
	"lacquer/internal/runlock"
	"lacquer/internal/scan"
)

func runConvert(cmd *cobra.Command, inputs []string, flags *convertFlags, configPath, logLevel, logFormat string) error {
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	format := cfg.Logging.Format
	if logFormat != "" {
		format = logFormat
	}
	logger, err := logging.New(logging.Options{Level: level, Format: format})
	if err != nil {
		return err
	}
	logger = logger.With(logging.String("run_id", uuid.NewString()))

	if flags.inPlace && cmd.Flags().Changed("output") {
		return &exitError{code: exitUsage, message: "--inplace and --output are mutually exclusive"}
	}

	outputDir := cfg.Output.Directory
	if cmd.Flags().Changed("output") {
		outputDir = flags.output
	}
	overwrite := cfg.Output.Overwrite || flags.overwrite
	keepArtwork := cfg.Output.KeepArtwork && !flags.noArt
	preferAfconvert := cfg.Encoders.PreferAfconvert || flags.preferAfconvert
	ffmpegPath := cfg.Encoders.FFmpeg
	if flags.ffmpegPath != "" {
		ffmpegPath = flags.ffmpegPath
	}
	verifyRequested := cfg.Runtime.Verify || flags.verify

	workers := cfg.Runtime.Workers
	if cmd.Flags().Changed("workers") {
		workers = flags.workers
	}
	if workers < 1 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 4
		}
	}

	backend, err := encoder.Detect(logger, preferAfconvert, ffmpegPath)
	if err != nil {
		if errors.Is(err, encoder.ErrNotFound) {
			return &exitError{code: exitNoEncoder, message: err.Error()}
		}
		return err
	}

	// Verification always decodes through ffmpeg, even when afconvert is
	// the conversion backend.
	verifyFFmpeg := ""
	if verifyRequested {
		if path, ok := encoder.ResolveFFmpeg(ffmpegPath); ok {
			verifyFFmpeg = path
		}
	}

	if len(inputs) == 0 {
		inputs = []string{"."}
	}
	files := scan.Collect(logger, inputs)
	if len(files) == 0 {
		logger.Warn("no FLAC files found")
		return nil
	}

	planner := plan.Planner{InPlace: flags.inPlace}
	if !flags.inPlace {
		planner.OutputDir = outputDir
		if root, ok := scan.InputRoot(inputs); ok {
			planner.Root = root
		}

		if !flags.dryRun {
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("create output directory %q: %w", outputDir, err)
			}
			lock, err := runlock.Acquire(outputDir)
			if err != nil {
				return err
			}
			defer lock.Release()
		}
	}

	logger.Info("starting conversion",
		logging.String("backend", string(backend.Kind)),
		logging.String("binary", backend.Path),
		logging.Int("targets", len(files)),
		logging.Int("workers", workers))

	conv := convert.New(logger, encoder.NewRunner(), backend, planner, convert.Options{
		Overwrite:      overwrite,
		DryRun:         flags.dryRun,
		Workers:        workers,
		KeepArtwork:    keepArtwork,
		DeleteOriginal: flags.deleteOriginal,
		Verify:         verifyRequested,
		VerifyFFmpeg:   verifyFFmpeg,
	})

	results := conv.Run(cmd.Context(), files)
	convert.Sort(results)

	counts := writeReport(cmd.OutOrStdout(), results)
	if counts.fail > 0 {
		return &exitError{code: exitJobFailed}
	}
	return nil
}
