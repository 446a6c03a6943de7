package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/ai-session-export/internal/config"
	"github.com/Zuo-Peng/ai-session-export/internal/document"
	"github.com/Zuo-Peng/ai-session-export/internal/export"
	"github.com/Zuo-Peng/ai-session-export/internal/tui"
)

func previewCmd() *cobra.Command {
	var appendMode bool

	cmd := &cobra.Command{
		Use:   "preview <session_id> <output_file>",
		Short: "Show what the next export would append, without writing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			exp := &export.Exporter{Config: cfg, Logger: newLogger()}
			p, err := exp.Pending(export.Request{
				SessionID:  args[0],
				OutputPath: args[1],
				Checkpoint: appendMode,
			})
			if err != nil {
				return err
			}

			msgs := p.Extracted.Messages
			if len(msgs) == 0 {
				fmt.Fprintf(os.Stderr, "No new messages to export (already at line %d)\n", p.StartLine)
				return nil
			}

			opts := exp.DocumentOptions(p.SessionFile, appendMode, time.Now())
			out := document.RenderSection(msgs, opts)
			if exists, err := document.HasContent(args[1]); err == nil && !exists {
				out = document.Header(opts) + out
			}

			if isTerminal(os.Stdout) {
				title := fmt.Sprintf("%s: %d new messages, lines %d-%d",
					opts.SessionName, len(msgs), p.StartLine+1, p.Extracted.Lines)
				return tui.RunPager(title, out)
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&appendMode, "append", false, "Preview with the pre-compaction heading")

	return cmd
}
