package main

import (
	"fmt"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/config"
	daemonutils "github.com/charlie0129/unitconv/pkg/utils/daemon"
)

func service() (daemonutils.Service, error) {
	// Get the path to the current executable
	exePath, err := os.Executable()
	if err != nil {
		return daemonutils.Service{}, fmt.Errorf("failed to get the path to the current executable: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return daemonutils.Service{}, fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}
	return daemonutils.Service{
		ExePath:    exePath,
		SocketPath: unixSocketPath,
		ConfigPath: configPath,
	}, nil
}

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install the unitconv daemon as a user service",
		GroupID: gAdvanced,
		Long: `Install the unitconv daemon as a user service.

This makes the daemon run in the background and start when you log in, as a
systemd user unit on Linux or a launchd agent on macOS.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}
			conf.SetAllowNonRootAccess(allowNonRootAccess)

			svc, err := service()
			if err != nil {
				return err
			}
			logrus.Infof("current executable path: %s", svc.ExePath)

			if err := daemonutils.Install(svc); err != nil {
				return fmt.Errorf("failed to install daemon: %w", err)
			}

			if err := conf.Save(); err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			logrus.Infof("installation succeeded")

			cmd.Printf("The service uses the current binary (%s), so make sure you do not move it. Once it is moved or deleted, run 'unitconv install' again.\n", svc.ExePath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow other users to access the daemon.")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall the unitconv daemon user service",
		GroupID: gAdvanced,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := service()
			if err != nil {
				return err
			}
			if err := daemonutils.Uninstall(svc); err != nil {
				return fmt.Errorf("failed to uninstall daemon: %w", err)
			}

			logrus.Infof("successfully uninstalled")

			cmd.Printf("Your config is kept in %s, in case you want to use unitconv again.\n", configPath)

			return nil
		},
	}
}
