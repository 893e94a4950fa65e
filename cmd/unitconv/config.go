package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/config"
	"github.com/charlie0129/unitconv/pkg/ledger"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show or change the configuration",
		GroupID: gAdvanced,
	}

	cmd.AddCommand(
		newConfigShowCommand(),
		newConfigSetCommand(),
	)

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var (
		output string
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration of the daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var conf config.Config
			if local {
				f, err := config.NewFile(configPath)
				if err != nil {
					return err
				}
				conf = f
			} else {
				raw, err := apiClient.GetConfig()
				if err != nil {
					return fmt.Errorf("failed to get config: %w", err)
				}
				conf = config.NewFileFromConfig(raw, "")
			}

			if output != "text" {
				raw, err := config.NewRawFileConfigFromConfig(conf)
				if err != nil {
					return err
				}
				return printStructured(cmd, output, raw)
			}

			cmd.Printf("  Default theme: %s\n", bold("%s", conf.DefaultTheme()))
			cmd.Printf("  Recent conversions shown: %s\n", bold("%d", conf.HistoryDisplayCount()))
			if d := conf.SessionIdleTimeout(); d > 0 {
				cmd.Printf("  Session idle timeout: %s\n", bold("%s", d))
			} else {
				cmd.Printf("  Session idle timeout: %s\n", bold("never"))
			}
			cmd.Printf("  Validate imported history: %s\n", bool2Text(conf.ValidateImport()))
			cmd.Printf("  Allow other users to access the daemon: %s\n", bool2Text(conf.AllowNonRootAccess()))
			return nil
		},
	}

	addOutputFlag(cmd, &output)
	cmd.Flags().BoolVar(&local, "local", false, "read the config file instead of asking the daemon")

	return cmd
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Change a value in the config file",
		Long: `Change a value in the config file.

Keys: defaultTheme (light, dark), historyDisplayCount (> 0),
sessionIdleMinutes (>= 0, 0 never expires), validateImport (true, false),
allowNonRootAccess (true, false).

A running daemon picks up the change after SIGHUP.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}
			if err := setConfigValue(conf, args[0], args[1]); err != nil {
				return err
			}
			if err := conf.Save(); err != nil {
				return err
			}
			logrus.Infof("successfully set %s to %s in %s", args[0], args[1], configPath)
			return nil
		},
	}
}

func setConfigValue(conf config.Config, key, value string) error {
	switch key {
	case "defaultTheme":
		t, err := ledger.ParseTheme(value)
		if err != nil {
			return err
		}
		conf.SetDefaultTheme(t)
	case "historyDisplayCount":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid historyDisplayCount %q: must be a positive integer", value)
		}
		conf.SetHistoryDisplayCount(n)
	case "sessionIdleMinutes":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid sessionIdleMinutes %q: must be a non-negative integer", value)
		}
		conf.SetSessionIdleTimeout(time.Duration(n) * time.Minute)
	case "validateImport":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid validateImport %q: %v", value, err)
		}
		conf.SetValidateImport(b)
	case "allowNonRootAccess":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid allowNonRootAccess %q: %v", value, err)
		}
		conf.SetAllowNonRootAccess(b)
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}
