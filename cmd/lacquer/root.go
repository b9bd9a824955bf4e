package main

import (
	"github.com/spf13/cobra"
)

type convertFlags struct {
	output          string
	inPlace         bool
	workers         int
	dryRun          bool
	overwrite       bool
	noArt           bool
	preferAfconvert bool
	ffmpegPath      string
	deleteOriginal  bool
	verify          bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevel string
	var logFormat string
	flags := &convertFlags{}

	rootCmd := &cobra.Command{
		Use:           "lacquer [inputs...]",
		Short:         "Batch-convert FLAC audio to ALAC (M4A)",
		Long:          "lacquer converts FLAC files to ALAC-encoded M4A containers using ffmpeg\n(or afconvert on macOS), preserving metadata and artwork where the backend\nallows. Inputs are files or directories; directories are searched\nrecursively. With no inputs the current directory is used.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags, configFlag, logLevel, logFormat)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json")

	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output directory (default \"alac\"; mirrors structure for a single directory input)")
	rootCmd.Flags().BoolVar(&flags.inPlace, "inplace", false, "Write outputs beside their sources")
	rootCmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Parallel conversion jobs (default: CPU count)")
	rootCmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "Plan only; touch nothing and spawn nothing")
	rootCmd.Flags().BoolVarP(&flags.overwrite, "overwrite", "f", false, "Replace existing outputs")
	rootCmd.Flags().BoolVar(&flags.noArt, "no-art", false, "Do not carry embedded artwork into outputs")
	rootCmd.Flags().BoolVar(&flags.preferAfconvert, "prefer-afconvert", false, "Prefer afconvert when available (macOS; limited metadata)")
	rootCmd.Flags().StringVar(&flags.ffmpegPath, "ffmpeg", "", "Explicit ffmpeg binary to use")
	rootCmd.Flags().BoolVar(&flags.deleteOriginal, "delete-original", false, "Delete each source after its conversion succeeds")
	rootCmd.Flags().BoolVar(&flags.verify, "verify", false, "Verify each conversion by comparing decoded PCM digests")

	rootCmd.AddCommand(newConfigCommand(&configFlag))
	rootCmd.AddCommand(newDepsCommand(&configFlag))

	return rootCmd
}
