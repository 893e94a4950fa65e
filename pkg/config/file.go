package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/unitconv/pkg/ledger"
	"github.com/charlie0129/unitconv/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		DefaultTheme:        ptr.To(string(ledger.ThemeLight)),
		HistoryDisplayCount: ptr.To(ledger.DefaultRecentCount),
		SessionIdleMinutes:  ptr.To(30),
		// Imported history is accepted verbatim unless the user opts in.
		ValidateImport:     ptr.To(false),
		AllowNonRootAccess: ptr.To(false),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	DefaultTheme        *string `json:"defaultTheme,omitempty" yaml:"defaultTheme,omitempty"`
	HistoryDisplayCount *int    `json:"historyDisplayCount,omitempty" yaml:"historyDisplayCount,omitempty"`
	SessionIdleMinutes  *int    `json:"sessionIdleMinutes,omitempty" yaml:"sessionIdleMinutes,omitempty"`
	ValidateImport      *bool   `json:"validateImport,omitempty" yaml:"validateImport,omitempty"`
	AllowNonRootAccess  *bool   `json:"allowNonRootAccess,omitempty" yaml:"allowNonRootAccess,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		DefaultTheme:        ptr.To(string(c.DefaultTheme())),
		HistoryDisplayCount: ptr.To(c.HistoryDisplayCount()),
		SessionIdleMinutes:  ptr.To(int(c.SessionIdleTimeout() / time.Minute)),
		ValidateImport:      ptr.To(c.ValidateImport()),
		AllowNonRootAccess:  ptr.To(c.AllowNonRootAccess()),
	}

	return rawConfig, nil
}

func (f *File) DefaultTheme() ledger.Theme {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	theme, err := ledger.ParseTheme(ptr.Deref(f.c.DefaultTheme, *defaultFileConfig.DefaultTheme))
	if err != nil {
		return ledger.Theme(*defaultFileConfig.DefaultTheme)
	}

	return theme
}

func (f *File) HistoryDisplayCount() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	count := ptr.Deref(f.c.HistoryDisplayCount, *defaultFileConfig.HistoryDisplayCount)
	if count <= 0 {
		count = *defaultFileConfig.HistoryDisplayCount
	}

	return count
}

// SessionIdleTimeout is how long a session may go unused before the daemon
// discards it. Zero disables expiry.
func (f *File) SessionIdleTimeout() time.Duration {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	minutes := ptr.Deref(f.c.SessionIdleMinutes, *defaultFileConfig.SessionIdleMinutes)
	if minutes < 0 {
		minutes = 0
	}

	return time.Duration(minutes) * time.Minute
}

func (f *File) ValidateImport() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.ValidateImport, *defaultFileConfig.ValidateImport)
}

func (f *File) AllowNonRootAccess() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.AllowNonRootAccess, *defaultFileConfig.AllowNonRootAccess)
}

func (f *File) SetDefaultTheme(t ledger.Theme) {
	if f.c == nil {
		panic("config is nil")
	}

	if t != ledger.ThemeLight && t != ledger.ThemeDark {
		panic("theme must be light or dark")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.DefaultTheme = ptr.To(string(t))
}

func (f *File) SetHistoryDisplayCount(i int) {
	if f.c == nil {
		panic("config is nil")
	}

	if i <= 0 {
		panic("history display count must be positive")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.HistoryDisplayCount = &i
}

func (f *File) SetSessionIdleTimeout(d time.Duration) {
	if f.c == nil {
		panic("config is nil")
	}

	if d < 0 {
		panic("session idle timeout must not be negative")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.SessionIdleMinutes = ptr.To(int(d / time.Minute))
}

func (f *File) SetValidateImport(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ValidateImport = &b
}

func (f *File) SetAllowNonRootAccess(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.AllowNonRootAccess = &b
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}
	if f.filepath == "" {
		return pkgerrors.New("config has no file path")
	}

	if err := os.MkdirAll(filepath.Dir(f.filepath), 0755); err != nil {
		return pkgerrors.Wrapf(err, "failed to create config directory for %s", f.filepath)
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"defaultTheme":        f.DefaultTheme(),
		"historyDisplayCount": f.HistoryDisplayCount(),
		"sessionIdleTimeout":  f.SessionIdleTimeout().String(),
		"validateImport":      f.ValidateImport(),
		"allowNonRootAccess":  f.AllowNonRootAccess(),
	}
}
