package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/ledger"
	"github.com/charlie0129/unitconv/pkg/report"
)

func NewHistoryCommand() *cobra.Command {
	var (
		all    bool
		recent int
	)

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show the conversion history of the current session",
		GroupID: gSession,
		Long: `Show the conversion history of the current session.

By default only the most recent conversions are shown, newest first. The
number of entries comes from the daemon config (historyDisplayCount).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := currentSession()
			if err != nil {
				return err
			}

			if all {
				entries, err := apiClient.GetHistory(id)
				if err != nil {
					return fmt.Errorf("failed to get history: %w", err)
				}
				printEntries(cmd, "Conversion history:", entries)
				return nil
			}

			entries, err := apiClient.GetRecentHistory(id, recent)
			if err != nil {
				return fmt.Errorf("failed to get history: %w", err)
			}
			printEntries(cmd, "Recent conversions:", entries)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&all, "all", "a", false, "show the full history, oldest first")
	f.IntVarP(&recent, "recent", "n", 0, "number of recent conversions to show (default: daemon config)")

	cmd.AddCommand(
		newHistoryAddCommand(),
		newHistoryExportCommand(),
		newHistoryImportCommand(),
	)

	return cmd
}

func newHistoryAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add [entry]",
		Short: "Append an entry to the history",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := currentSession()
			if err != nil {
				return err
			}
			if err := apiClient.AppendHistory(id, args[0]); err != nil {
				return err
			}
			logrus.Infof("added to history: %s", args[0])
			return nil
		},
	}
}

func newHistoryExportCommand() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history as text, one entry per line",
		Long: `Export the history as text, one entry per line.

The text format can be loaded back with 'unitconv history import'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := currentSession()
			if err != nil {
				return err
			}
			text, err := apiClient.ExportHistory(id)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			switch format {
			case "text":
				buf.WriteString(text)
				if text != "" && out == "" && isTerminal(cmd.OutOrStdout()) {
					// Keep the shell prompt on its own line. Redirected
					// output stays byte-identical to the history.
					buf.WriteString("\n")
				}
			case "markdown":
				var entries []string
				if text != "" {
					entries = strings.Split(text, "\n")
				}
				if err := report.WriteHistory(&buf, entries); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			if out == "" {
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			logrus.Infof("history exported to %s", out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&format, "format", "text", "export format (text, markdown)")
	f.StringVarP(&out, "output", "o", "", "write to this file instead of stdout (e.g. conversion_history.txt)")

	return cmd
}

func newHistoryImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the history with the lines of a text file",
		Long: `Replace the history with the lines of a text file.

The whole history is replaced, nothing is merged. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := currentSession()
			if err != nil {
				return err
			}

			var b []byte
			if args[0] == "-" {
				b, err = io.ReadAll(cmd.InOrStdin())
			} else {
				b, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}

			n, err := apiClient.ImportHistory(id, string(b))
			if err != nil {
				return err
			}
			printNotice(cmd, ledger.Success(fmt.Sprintf("History loaded successfully! (%d entries)", n)))
			return nil
		},
	}
}
