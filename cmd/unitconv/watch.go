package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/events"
)

func NewWatchCommand() *cobra.Command {
	var allSessions bool

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   "Print session events as they happen",
		GroupID: gAdvanced,
		Long: `Print session events as they happen.

Only events of the current session are shown unless --all is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := ""
			if !allSessions {
				id, err := currentSession()
				if err != nil {
					return err
				}
				filter = id
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ch, err := apiClient.SubscribeEvents(ctx, filter)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"socket":  apiClient.SocketPath(),
				"session": filter,
			}).Info("watching events, press Ctrl+C to stop")

			for ev := range ch {
				cmd.Println(formatEvent(ev))
			}
			if ctx.Err() == nil {
				fmt.Fprintln(os.Stderr, "daemon closed the event stream")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&allSessions, "all", false, "show events of all sessions")

	return cmd
}

func formatEvent(ev events.Event) string {
	name := color.New(color.Bold, color.FgCyan).Sprint(ev.Name)

	switch ev.Name {
	case events.SessionCreated, events.SessionDestroyed, events.SessionExpired:
		p, err := events.DecodeAs[events.SessionEvent](ev)
		if err != nil {
			break
		}
		return fmt.Sprintf("%s %s %s", stamp(p.Ts), name, p.Session)
	default:
		p, err := events.DecodeAs[events.LedgerEvent](ev)
		if err != nil {
			break
		}
		detail := p.Entry
		switch {
		case ev.Name == events.HistoryImported:
			detail = fmt.Sprintf("%d entries", p.Count)
		case ev.Name == events.ThemeToggled:
			detail = p.Theme
		}
		if !p.Accepted {
			detail += color.YellowString(" (rejected)")
		}
		return fmt.Sprintf("%s %s %s %s", stamp(p.Ts), name, p.Session, detail)
	}

	return fmt.Sprintf("%s %s", name, ev.Data)
}

func stamp(ts int64) string {
	return time.Unix(ts, 0).Format(time.Kitchen)
}
