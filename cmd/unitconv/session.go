package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/report"
)

func NewSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Short:   "Manage sessions",
		GroupID: gSession,
		Long: `Manage sessions.

A session holds a conversion history, favorites, a theme and a feedback
field. Sessions live in the daemon and expire after being idle for the
configured time. The current session is remembered in ` + sessionPath + `.`,
	}

	cmd.AddCommand(
		newSessionNewCommand(),
		newSessionShowCommand(),
		newSessionListCommand(),
		newSessionRmCommand(),
		newSessionUseCommand(),
	)

	return cmd
}

func newSessionNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new session and make it current",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := apiClient.CreateSession()
			if err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}
			if err := saveCurrentSession(info.ID); err != nil {
				return err
			}
			logrus.WithField("session", info.ID).Debug("current session saved")
			cmd.Println(info.ID)
			return nil
		},
	}
}

func newSessionShowCommand() *cobra.Command {
	var (
		output string
		recent int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the ledger of the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := currentSession()
			if err != nil {
				return err
			}
			snap, err := apiClient.GetSession(id)
			if err != nil {
				return fmt.Errorf("failed to get session: %w", err)
			}

			if recent <= 0 {
				if conf, err := apiClient.GetConfig(); err == nil && conf.HistoryDisplayCount != nil {
					recent = *conf.HistoryDisplayCount
				}
			}

			switch output {
			case "text":
			case "markdown":
				return report.WriteLedger(cmd.OutOrStdout(), *snap, recent)
			default:
				return printStructured(cmd, output, snap)
			}

			cmd.Printf("Session: %s\n", bold("%s", id))
			cmd.Printf("Theme: %s\n", bold("%s", snap.Theme))
			printEntries(cmd, "Recent conversions:", snap.RecentHistory(recent))
			printEntries(cmd, "Favorites:", snap.Favorites)
			if snap.Feedback != "" {
				cmd.Printf("Feedback draft: %s\n", snap.Feedback)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, yaml, markdown)")
	cmd.Flags().IntVar(&recent, "recent", 0, "number of recent conversions to show (default: daemon config)")

	return cmd
}

func newSessionListCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List live sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := apiClient.ListSessions()
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
			if output != "text" {
				return printStructured(cmd, output, infos)
			}

			current, _ := currentSession()
			for _, info := range infos {
				mark := " "
				if info.ID == current {
					mark = "*"
				}
				cmd.Printf("%s %s  %-5s  created %s, last used %s ago\n",
					mark, info.ID, info.Theme,
					info.CreatedAt.Local().Format(time.DateTime),
					time.Since(info.LastUsed).Round(time.Second))
			}
			return nil
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}

func newSessionRmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Destroy a session (default: the current one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var id string
			if len(args) == 1 {
				id = args[0]
			} else {
				var err error
				if id, err = currentSession(); err != nil {
					return err
				}
			}
			if err := apiClient.DeleteSession(id); err != nil {
				return err
			}
			clearCurrentSession(id)
			logrus.Infof("session %s destroyed", id)
			return nil
		},
	}
}

func newSessionUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use [id]",
		Short: "Make an existing session current",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, err := apiClient.GetSession(args[0]); err != nil {
				return fmt.Errorf("failed to use session: %w", err)
			}
			if err := saveCurrentSession(args[0]); err != nil {
				return err
			}
			logrus.Infof("current session is now %s", args[0])
			return nil
		},
	}
}
