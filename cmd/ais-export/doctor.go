package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/ai-session-export/internal/config"
	"github.com/Zuo-Peng/ai-session-export/internal/history"
	"github.com/Zuo-Peng/ai-session-export/internal/locate"
	"github.com/Zuo-Peng/ai-session-export/internal/progress"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [output_file]",
		Short: "Self-check: verify config, project dir, history DB and marker",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			cfgPath := config.Path(home)
			if _, err := os.Stat(cfgPath); err != nil {
				fmt.Printf("  File: %s (not present, using defaults)\n", cfgPath)
			} else {
				fmt.Printf("  File: %s\n", cfgPath)
			}
			fmt.Printf("  Max chars: %d\n", cfg.MaxChars)
			fmt.Printf("  Title: %s\n", cfg.Title)

			fmt.Println("\n=== Projects ===")
			checkDir("Root", cfg.ClaudeRoot)

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			fmt.Printf("  Working dir: %s\n", cwd)
			fmt.Printf("  Slug: %s\n", locate.ProjectSlug(cwd))
			if dir, err := locate.ResolveProjectDir(cfg.ClaudeRoot, cwd); err != nil {
				fmt.Printf("  Project dir: %v\n", err)
			} else {
				fmt.Printf("  Project dir: %s\n", dir)
				if files, err := locate.ListSessions(dir); err != nil {
					fmt.Printf("  scan error: %v\n", err)
				} else {
					fmt.Printf("  Session logs: %d\n", len(files))
				}
			}

			fmt.Println("\n=== History ===")
			fmt.Printf("  Enabled: %v\n", cfg.History)
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (created on first export)")
			} else {
				db, err := history.OpenDB(cfg.DBPath)
				if err != nil {
					fmt.Printf("  open error: %v\n", err)
				} else {
					n, err := db.Count()
					db.Close()
					if err != nil {
						fmt.Printf("  count error: %v\n", err)
					} else {
						fmt.Printf("  Runs: %d\n", n)
					}
				}
			}

			if len(args) == 1 {
				fmt.Println("\n=== Output ===")
				marker := progress.MarkerPath(args[0])
				fmt.Printf("  Document: %s\n", args[0])
				fmt.Printf("  Marker: %s\n", marker)
				fmt.Printf("  Last exported line: %d\n", progress.Read(marker))
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
