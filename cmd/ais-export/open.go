package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/ai-session-export/internal/open"
)

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <output_file>",
		Short: "Open an exported document in $EDITOR at its last line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return open.OpenDocument(args[0])
		},
	}
}
