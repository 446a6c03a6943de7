package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/ai-session-export/internal/config"
	"github.com/Zuo-Peng/ai-session-export/internal/export"
	"github.com/Zuo-Peng/ai-session-export/internal/history"
	"github.com/Zuo-Peng/ai-session-export/internal/tui"
)

var version = "dev"

var verbose bool

func main() {
	rootCmd := exportCmd()
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styled(os.Stderr, tui.StyleError, "Error: "+err.Error()))
		os.Exit(1)
	}
}

func exportCmd() *cobra.Command {
	var appendMode bool

	cmd := &cobra.Command{
		Use:   "ais-export [--append] <session_id> <output_file>",
		Short: "Append new Claude Code conversation messages to a Markdown log",
		Long: `Exports the Claude Code session <session_id> of the current project to
<output_file>, appending only the messages written since the last export.
Progress is kept in a hidden .<name>.lastline file next to the output.

Use --append from a PreCompact hook to mark the section as a
pre-compaction checkpoint.`,
		Version:       version,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// argument errors above print usage, runtime errors do not
			cmd.SilenceUsage = true

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := newLogger()
			exp := &export.Exporter{Config: cfg, Logger: logger}

			if cfg.History {
				db, err := history.OpenDB(cfg.DBPath)
				if err != nil {
					logger.Warn("export history disabled", "err", err)
				} else {
					defer db.Close()
					exp.History = db
				}
			}

			res, err := exp.Run(export.Request{
				SessionID:  args[0],
				OutputPath: args[1],
				Checkpoint: appendMode,
			})
			if err != nil {
				return err
			}

			if res.NothingNew {
				fmt.Println(styled(os.Stdout, tui.StyleMuted,
					fmt.Sprintf("No new messages to export (already at line %d)", res.StartLine)))
				return nil
			}
			fmt.Println(styled(os.Stdout, tui.StyleSuccess,
				fmt.Sprintf("Exported %d new messages to %s", res.Exported, res.OutputPath)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&appendMode, "append", false, "Mark the section as a pre-compaction export")

	return cmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// styled applies style only when f is a terminal.
func styled(f *os.File, style lipgloss.Style, s string) string {
	if !isTerminal(f) {
		return s
	}
	return style.Render(s)
}
