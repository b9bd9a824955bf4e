package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lacquer/internal/config"
	"lacquer/internal/deps"
)

func newDepsCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Show external encoder availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			statuses := deps.Check(deps.EncoderRequirements(cfg.Encoders.FFmpeg))

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"NAME", "COMMAND", "AVAILABLE", "NOTE"})
			for _, status := range statuses {
				available := "yes"
				if !status.Available {
					available = "no"
				}
				note := status.Description
				if status.Detail != "" {
					note = status.Detail
				}
				tw.AppendRow(table.Row{status.Name, status.Command, available, note})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			return nil
		},
	}
}
