package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/ai-session-export/internal/config"
	"github.com/Zuo-Peng/ai-session-export/internal/history"
)

func historyCmd() *cobra.Command {
	var output, session string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded export runs (newest first)",
		Long: `Lists export runs recorded in the history database as TSV:
  exportedAt, sessionId, lines, messages, kind, output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Fprintln(os.Stderr, "No export history recorded yet.")
				return nil
			}

			db, err := history.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if output != "" {
				if abs, err := filepath.Abs(output); err == nil {
					output = abs
				}
			}

			runs, err := db.List(history.Filter{
				OutputPath: output,
				SessionID:  session,
				Limit:      limit,
			})
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}

			if len(runs) == 0 {
				fmt.Fprintln(os.Stderr, "No matching exports.")
				return nil
			}

			for _, r := range runs {
				kind := "export"
				if r.Checkpoint {
					kind = "pre-compaction"
				}
				fmt.Printf("%s\t%s\t%d-%d\t%d\t%s\t%s\n",
					r.ExportedAt.Local().Format("2006-01-02 15:04:05"),
					r.SessionID,
					r.FromLine, r.ToLine,
					r.Messages,
					kind,
					r.OutputPath,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Only runs into this output file")
	cmd.Flags().StringVar(&session, "session", "", "Only runs of this session id")
	cmd.Flags().IntVar(&limit, "limit", 20, "Max rows (0 = no limit)")

	return cmd
}
