package ledger

import (
	"slices"
	"testing"
)

func TestToggleThemeTwice(t *testing.T) {
	for _, start := range []Theme{ThemeLight, ThemeDark} {
		l := New(start)
		if got := l.ToggleTheme(); got == start {
			t.Fatalf("toggle from %s did not change theme", start)
		}
		if got := l.ToggleTheme(); got != start {
			t.Fatalf("toggling twice from %s gave %s", start, got)
		}
	}
}

func TestNewDefaultsToLight(t *testing.T) {
	if got := New("").Theme(); got != ThemeLight {
		t.Fatalf("got %s, want light", got)
	}
}

func TestParseTheme(t *testing.T) {
	if th, err := ParseTheme(" Dark "); err != nil || th != ThemeDark {
		t.Fatalf("got %s %v", th, err)
	}
	if _, err := ParseTheme("sepia"); err == nil {
		t.Fatal("expected error")
	}
}

func TestAddFavoriteIdempotent(t *testing.T) {
	l := New(ThemeLight)
	entry := "10.0000 Kilometers = 6.2150 miles"

	if n := l.AddFavorite(entry); !n.OK() {
		t.Fatalf("first add rejected: %v", n)
	}
	n := l.AddFavorite(entry)
	if n.OK() || n.Level != LevelWarning {
		t.Fatalf("second add should warn, got %v", n)
	}
	if got := l.Favorites(); len(got) != 1 || got[0] != entry {
		t.Fatalf("favorites = %v", got)
	}

	l.AddFavorite(entry + " ")
	if got := len(l.Favorites()); got != 2 {
		t.Fatalf("entries differing by whitespace are distinct, got %d favorites", got)
	}
}

func TestRecentHistory(t *testing.T) {
	l := New(ThemeLight)
	if got := l.RecentHistory(DefaultRecentCount); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}

	for _, e := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		l.AppendHistory(e)
	}
	want := []string{"g", "f", "e", "d", "c"}
	if got := l.RecentHistory(DefaultRecentCount); !slices.Equal(got, want) {
		t.Fatalf("RecentHistory = %v, want %v", got, want)
	}
	if got := l.RecentHistory(100); len(got) != 7 || got[6] != "a" {
		t.Fatalf("RecentHistory(100) = %v", got)
	}
	if got := l.History(); got[0] != "a" || len(got) != 7 {
		t.Fatalf("History = %v", got)
	}
}

func TestAppendHistoryAllowsDuplicates(t *testing.T) {
	l := New(ThemeLight)
	l.AppendHistory("x")
	l.AppendHistory("x")
	if got := len(l.History()); got != 2 {
		t.Fatalf("got %d entries", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	histories := [][]string{
		{},
		{"1.0000 Kilometers = 0.6215 miles"},
		{"1.0000 Kilometers = 0.6215 miles", "0.0000 Celsius = 32.0000 °F", ""},
		{"", "  spaced  ", "x"},
	}
	for _, h := range histories {
		src := New(ThemeLight)
		for _, e := range h {
			src.AppendHistory(e)
		}
		dst := New(ThemeDark)
		dst.AppendHistory("to be replaced")
		dst.ImportHistory(src.ExportHistory())
		if got := dst.History(); len(got) != len(h) || (len(h) > 0 && !slices.Equal(got, h)) {
			t.Errorf("round trip of %q gave %q", h, got)
		}
	}

	// A lone empty entry exports as "" and is read back as no history.
	src := New(ThemeLight)
	src.AppendHistory("")
	dst := New(ThemeLight)
	if n := dst.ImportHistory(src.ExportHistory()); n != 0 || len(dst.History()) != 0 {
		t.Errorf("round trip of [\"\"] gave %d entries %q", n, dst.History())
	}
}

func TestImportReplacesVerbatim(t *testing.T) {
	l := New(ThemeLight)
	l.AppendHistory("old")
	if n := l.ImportHistory("not an entry\n\nanother\n"); n != 4 {
		t.Fatalf("imported %d lines, want 4", n)
	}
	want := []string{"not an entry", "", "another", ""}
	if got := l.History(); !slices.Equal(got, want) {
		t.Fatalf("History = %q, want %q", got, want)
	}
}

func TestSubmitFeedback(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		ok       bool
		leftover string
	}{
		{"empty", "", false, ""},
		{"whitespace", "   ", false, "   "},
		{"tabs and newlines", "\t\n", false, "\t\n"},
		{"accepted", "good app", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(ThemeLight)
			n := l.SubmitFeedback(tt.text)
			if n.OK() != tt.ok {
				t.Fatalf("SubmitFeedback(%q) = %v", tt.text, n)
			}
			if l.Feedback() != tt.leftover {
				t.Fatalf("feedback field = %q, want %q", l.Feedback(), tt.leftover)
			}
		})
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	l := New(ThemeDark)
	l.AppendHistory("a")
	l.AddFavorite("b")
	l.SetFeedback("draft")

	s := l.Snapshot()
	s.History[0] = "mutated"
	s.Favorites[0] = "mutated"

	if l.History()[0] != "a" || l.Favorites()[0] != "b" {
		t.Fatal("snapshot shares memory with ledger")
	}
	if s.Theme != ThemeDark || s.Feedback != "draft" {
		t.Fatalf("unexpected snapshot %+v", s)
	}

	empty := New(ThemeLight).Snapshot()
	if empty.History == nil || empty.Favorites == nil {
		t.Fatal("empty snapshot should carry empty, non-nil lists")
	}
}
