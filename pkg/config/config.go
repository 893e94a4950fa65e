package config

import (
	"time"

	"github.com/charlie0129/unitconv/pkg/ledger"
)

type Config interface {
	DefaultTheme() ledger.Theme
	HistoryDisplayCount() int
	SessionIdleTimeout() time.Duration
	ValidateImport() bool
	AllowNonRootAccess() bool

	SetDefaultTheme(ledger.Theme)
	SetHistoryDisplayCount(int)
	SetSessionIdleTimeout(time.Duration)
	SetValidateImport(bool)
	SetAllowNonRootAccess(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
