package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/daemon"
	"github.com/charlie0129/unitconv/pkg/version"
)

var (
	// alwaysAllowNonRootAccess indicates whether to always allow other users to access the unitconv daemon.
	alwaysAllowNonRootAccess = false
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "daemon",
		Short:   "Run unitconv daemon in the foreground",
		GroupID: gAdvanced,
		Long: `Run unitconv daemon in the foreground.

The daemon serves the conversion catalog and keeps the sessions. Sessions live
in memory only and are discarded when they stay idle for longer than the
configured timeout or when the daemon stops. Send SIGHUP to reload the config.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("unitconv daemon starting")
			return daemon.Run(configPath, unixSocketPath, alwaysAllowNonRootAccess)
		},
	}

	f := cmd.Flags()

	f.BoolVar(&alwaysAllowNonRootAccess, "always-allow-non-root-access", false,
		"Always allow other users to access the daemon.")

	return cmd
}
