// Package daemon installs the unitconv daemon as a per-user background
// service: a systemd user unit on Linux or a launchd agent on macOS.
package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

const (
	systemdUnitName  = "unitconv.service"
	launchAgentLabel = "io.github.charlie0129.unitconv"
)

// Service describes the background service of one user.
type Service struct {
	// GOOS selects the service manager. Empty means runtime.GOOS.
	GOOS       string
	ExePath    string
	SocketPath string
	ConfigPath string
	// Dir overrides where the service file is written.
	Dir string
}

func (s Service) goos() string {
	if s.GOOS == "" {
		return runtime.GOOS
	}
	return s.GOOS
}

// Path returns where the service file is installed.
func (s Service) Path() (string, error) {
	switch s.goos() {
	case "linux":
		dir := s.Dir
		if dir == "" {
			dir = filepath.Join(xdg.ConfigHome, "systemd", "user")
		}
		return filepath.Join(dir, systemdUnitName), nil
	case "darwin":
		dir := s.Dir
		if dir == "" {
			dir = filepath.Join(xdg.Home, "Library", "LaunchAgents")
		}
		return filepath.Join(dir, launchAgentLabel+".plist"), nil
	default:
		return "", fmt.Errorf("installing a service is not supported on %s", s.goos())
	}
}

// Render returns the content of the service file.
func (s Service) Render() (string, error) {
	var tmpl string
	switch s.goos() {
	case "linux":
		tmpl = systemdUnitTemplate
	case "darwin":
		tmpl = launchAgentPlistTemplate
	default:
		return "", fmt.Errorf("installing a service is not supported on %s", s.goos())
	}
	return strings.NewReplacer(
		"/path/to/unitconv", s.ExePath,
		"/path/to/socket", s.SocketPath,
		"/path/to/config", s.ConfigPath,
	).Replace(tmpl), nil
}

// WriteFile renders the service file and writes it to Path.
func (s Service) WriteFile() (string, error) {
	path, err := s.Path()
	if err != nil {
		return "", err
	}
	content, err := s.Render()
	if err != nil {
		return "", err
	}

	// mkdir -p
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	// warn if the file already exists
	if _, err := os.Stat(path); err == nil {
		logrus.Warnf("%s already exists, overwriting", path)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Install writes the service file and starts the service.
func Install(s Service) error {
	path, err := s.WriteFile()
	if err != nil {
		return err
	}
	logrus.Infof("service file written to %s", path)

	logrus.Infof("starting unitconv daemon")
	switch s.goos() {
	case "linux":
		if err := run("systemctl", "--user", "daemon-reload"); err != nil {
			return err
		}
		return run("systemctl", "--user", "enable", "--now", systemdUnitName)
	case "darwin":
		return run("/bin/launchctl", "load", path)
	}
	return nil
}

// Uninstall stops the service and removes its file.
func Uninstall(s Service) error {
	path, err := s.Path()
	if err != nil {
		return err
	}

	logrus.Infof("stopping unitconv daemon")
	switch s.goos() {
	case "linux":
		err = run("systemctl", "--user", "disable", "--now", systemdUnitName)
	case "darwin":
		err = run("/bin/launchctl", "unload", path)
	}
	if err != nil {
		logrus.Warnf("failed to stop service: %v", err)
	}

	logrus.Infof("removing service file")

	// if the file doesn't exist, we don't need to remove it
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}

func run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s failed: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
