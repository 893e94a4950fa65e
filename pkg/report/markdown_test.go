package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/ledger"
)

func TestWriteLedger(t *testing.T) {
	t.Parallel()

	snap := ledger.Snapshot{
		Theme:     ledger.ThemeDark,
		History:   []string{"first entry", "second entry", "third entry"},
		Favorites: []string{"second entry"},
	}

	var buf bytes.Buffer
	if err := WriteLedger(&buf, snap, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output := buf.String()

	for _, want := range []string{"# Unit Converter Session", "## Recent Conversions", "## Conversion History", "## Favorites", "dark"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}

	recent := output[strings.Index(output, "## Recent Conversions"):strings.Index(output, "## Conversion History")]
	if strings.Contains(recent, "first entry") {
		t.Error("recent section should only hold the last two entries")
	}
	if strings.Index(recent, "third entry") > strings.Index(recent, "second entry") {
		t.Error("recent section should list the newest entry first")
	}
}

func TestWriteLedgerEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteLedger(&buf, ledger.New(ledger.ThemeLight).Snapshot(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No conversions yet.") {
		t.Error("expected placeholder for empty history")
	}
}

func TestWriteReference(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteReference(&buf, catalog.Default(), catalog.Volume); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Volume Quick Reference") {
		t.Error("expected output to contain the heading")
	}
	if !strings.Contains(output, "Liters to Gallons") || !strings.Contains(output, "`gal-l`") {
		t.Error("expected output to contain the volume conversions")
	}
	for _, line := range catalog.QuickReference(catalog.Volume) {
		if !strings.Contains(output, line) {
			t.Errorf("expected output to contain %q", line)
		}
	}

	if err := WriteReference(&buf, catalog.Default(), catalog.Category("Speed")); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestWriteHistory(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteHistory(&buf, []string{"1.0000 Liters = 0.2642 gallons"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "1.0000 Liters = 0.2642 gallons") {
		t.Error("expected output to contain the entry")
	}
}
