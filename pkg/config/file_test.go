package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charlie0129/unitconv/pkg/ledger"
)

func TestNewFileMissingUsesDefaults(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatal(err)
	}

	if f.DefaultTheme() != ledger.ThemeLight {
		t.Errorf("DefaultTheme = %s", f.DefaultTheme())
	}
	if f.HistoryDisplayCount() != 5 {
		t.Errorf("HistoryDisplayCount = %d", f.HistoryDisplayCount())
	}
	if f.SessionIdleTimeout() != 30*time.Minute {
		t.Errorf("SessionIdleTimeout = %s", f.SessionIdleTimeout())
	}
	if f.ValidateImport() || f.AllowNonRootAccess() {
		t.Errorf("boolean options should default to false")
	}
}

func TestEmptyFileUsesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(p, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := NewFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if f.HistoryDisplayCount() != 5 {
		t.Errorf("HistoryDisplayCount = %d", f.HistoryDisplayCount())
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	body := `{"defaultTheme": "sepia", "historyDisplayCount": -3, "sessionIdleMinutes": -1}`
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := NewFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if f.DefaultTheme() != ledger.ThemeLight {
		t.Errorf("DefaultTheme = %s", f.DefaultTheme())
	}
	if f.HistoryDisplayCount() != 5 {
		t.Errorf("HistoryDisplayCount = %d", f.HistoryDisplayCount())
	}
	if f.SessionIdleTimeout() != 0 {
		t.Errorf("SessionIdleTimeout = %s", f.SessionIdleTimeout())
	}
}

func TestMalformedFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(p, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(p); err == nil {
		t.Fatal("expected error")
	}
}

func TestSaveAndReload(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "config.json")
	f, err := NewFile(p)
	if err != nil {
		t.Fatal(err)
	}

	f.SetDefaultTheme(ledger.ThemeDark)
	f.SetHistoryDisplayCount(8)
	f.SetSessionIdleTimeout(90 * time.Minute)
	f.SetValidateImport(true)
	f.SetAllowNonRootAccess(true)
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}

	g, err := NewFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if g.DefaultTheme() != ledger.ThemeDark || g.HistoryDisplayCount() != 8 ||
		g.SessionIdleTimeout() != 90*time.Minute || !g.ValidateImport() || !g.AllowNonRootAccess() {
		t.Fatalf("reloaded config differs: %v", g.LogrusFields())
	}

	raw, err := NewRawFileConfigFromConfig(g)
	if err != nil {
		t.Fatal(err)
	}
	if *raw.SessionIdleMinutes != 90 || *raw.DefaultTheme != "dark" {
		t.Fatalf("unexpected raw config %+v", raw)
	}
}

func TestSetterPanics(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	f.SetHistoryDisplayCount(0)
}
