package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/config"
	"github.com/charlie0129/unitconv/pkg/tui"
)

func NewTUICommand() *cobra.Command {
	var (
		importPath string
		exportPath string
	)

	cmd := &cobra.Command{
		Use:     "tui",
		Short:   "Open the interactive converter",
		GroupID: gBasic,
		Long: `Open the interactive converter.

The form runs locally and does not need the daemon. Its history, favorites
and theme only last until you quit. Use --import to start from a history
exported earlier and --export to keep the history.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			var history string
			if importPath != "" {
				b, err := os.ReadFile(importPath)
				if err != nil {
					return fmt.Errorf("failed to import history: %w", err)
				}
				history = string(b)
				logrus.Infof("history loaded from %s", importPath)
			}

			l, err := tui.Run(catalog.Default(), tui.Options{
				Theme:       conf.DefaultTheme(),
				RecentCount: conf.HistoryDisplayCount(),
				History:     history,
			})
			if err != nil {
				return fmt.Errorf("failed to run tui: %w", err)
			}

			if exportPath == "" || len(l.History()) == 0 {
				return nil
			}
			if err := os.WriteFile(exportPath, []byte(l.ExportHistory()), 0o644); err != nil {
				return fmt.Errorf("failed to export history: %w", err)
			}
			logrus.Infof("history exported to %s", exportPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&importPath, "import", "", "load the history from this file before starting")
	cmd.Flags().StringVar(&exportPath, "export", "", "write the history to this file on exit")

	return cmd
}
