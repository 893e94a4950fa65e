package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/charlie0129/unitconv/pkg/ledger"
)

var errNoSession = pkgerrors.New("no current session")

func parseFloatArg(args []string, valueName string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid number of arguments")
	}

	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid %s: %s is not a finite number", valueName, args[0])
	}

	return value, nil
}

// currentSession returns the session given by --session or UNITCONV_SESSION,
// falling back to the one saved by 'session new' or 'session use'.
func currentSession() (string, error) {
	if sessionID != "" {
		return sessionID, nil
	}
	b, err := os.ReadFile(sessionPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errNoSession
		}
		return "", pkgerrors.Wrapf(err, "failed to read current session from %s", sessionPath)
	}
	id := strings.TrimSpace(string(b))
	if id == "" {
		return "", errNoSession
	}
	logrus.WithField("session", id).Debug("using current session")
	return id, nil
}

func saveCurrentSession(id string) error {
	if err := os.MkdirAll(filepath.Dir(sessionPath), 0o700); err != nil {
		return pkgerrors.Wrapf(err, "failed to create state directory")
	}
	if err := os.WriteFile(sessionPath, []byte(id+"\n"), 0o600); err != nil {
		return pkgerrors.Wrapf(err, "failed to save current session to %s", sessionPath)
	}
	return nil
}

func clearCurrentSession(id string) {
	cur, err := os.ReadFile(sessionPath)
	if err != nil || strings.TrimSpace(string(cur)) != id {
		return
	}
	if err := os.Remove(sessionPath); err != nil {
		logrus.Warnf("failed to clear current session: %v", err)
	}
}

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", "text", "output format (text, json, yaml)")
}

func printStructured(cmd *cobra.Command, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func printNotice(cmd *cobra.Command, n ledger.Notice) {
	if n.OK() {
		cmd.Println(color.New(color.Bold, color.FgGreen).Sprint("✔ ") + n.Message)
		return
	}
	cmd.Println(color.New(color.Bold, color.FgYellow).Sprint("! ") + n.Message)
}

func printEntries(cmd *cobra.Command, title string, entries []string) {
	cmd.Println(bold("%s", title))
	if len(entries) == 0 {
		cmd.Println("  (none)")
		return
	}
	for i, e := range entries {
		cmd.Printf("  %d. %s\n", i+1, e)
	}
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
