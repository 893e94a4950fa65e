package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/unitconv/pkg/client"
)

const appName = "unitconv"

var (
	logLevel       = "info"
	unixSocketPath = filepath.Join(xdg.RuntimeDir, appName+".sock")
	configPath     = filepath.Join(xdg.ConfigHome, appName, "config.json")
	sessionPath    = filepath.Join(xdg.StateHome, appName, "session")
	sessionID      = os.Getenv("UNITCONV_SESSION")
)

var apiClient *client.Client

var (
	gBasic        = "Basic:"
	gSession      = "Session:"
	gAdvanced     = "Advanced:"
	commandGroups = []string{
		gBasic,
		gSession,
		gAdvanced,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, client.ErrDaemonNotRunning):
		fmt.Fprintln(os.Stderr, "\nError: unitconv daemon is not running")
		fmt.Fprintf(os.Stderr, "Start it with 'unitconv daemon' (listening on %s), or use 'unitconv tui' which needs no daemon.\n", unixSocketPath)
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again as the user that started the daemon")
		fmt.Fprintln(os.Stderr, "  - Or restart the daemon with the '--always-allow-non-root-access' flag")
	case errors.Is(err, client.ErrNotFound):
		fmt.Fprintln(os.Stderr, "\nError: the session does not exist or has expired")
		fmt.Fprintln(os.Stderr, "Start a new one with 'unitconv session new'.")
	case errors.Is(err, errNoSession):
		fmt.Fprintln(os.Stderr, "\nStart a session with 'unitconv session new' or pass --session.")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "unitconv converts between common units and keeps a per-session history",
		Long: `unitconv converts between common units of length, weight, temperature,
volume and area.

A background daemon keeps sessions, each with its own conversion history,
favorites and theme. Use 'unitconv tui' for the interactive form.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}

			apiClient = client.NewClient(unixSocketPath)

			if clientVersion, daemonVersion, err := getVersion(); err == nil {
				if daemonVersion != clientVersion {
					logrus.WithFields(logrus.Fields{
						"clientVersion": clientVersion,
						"daemonVersion": daemonVersion,
					}).Warn("Version mismatch between client and daemon. Restart the daemon after upgrading.")
				}
			}

			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "unitconv daemon unix socket path")
	globalFlags.StringVar(&sessionID, "session", sessionID, "session id to use instead of the current session (env UNITCONV_SESSION)")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewCategoriesCommand(),
		NewConversionsCommand(),
		NewConvertCommand(),
		NewReferenceCommand(),
		NewFactCommand(),
		NewSessionCommand(),
		NewHistoryCommand(),
		NewFavoriteCommand(),
		NewThemeCommand(),
		NewFeedbackCommand(),
		NewWatchCommand(),
		NewTUICommand(),
		NewConfigCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}
