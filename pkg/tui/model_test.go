package tui

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/ledger"
)

func newTestModel() Model {
	return New(catalog.Default(), Options{Rand: rand.New(rand.NewSource(1))})
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConvertAndRecord(t *testing.T) {
	m := newTestModel()

	// Length, Kilometers to Miles
	m = press(m, runes("100"), key(tea.KeyEnter))
	if m.result == nil || m.result.Entry() != "100.0000 Kilometers = 62.1504 miles" {
		t.Fatalf("result = %+v", m.result)
	}

	m = press(m, key(tea.KeyCtrlA), key(tea.KeyCtrlA))
	if got := m.ledger.History(); len(got) != 2 {
		t.Fatalf("history = %v", got)
	}

	m = press(m, key(tea.KeyCtrlF))
	if m.notice == nil || !m.notice.OK() {
		t.Fatalf("notice = %+v", m.notice)
	}
	m = press(m, key(tea.KeyCtrlF))
	if m.notice == nil || m.notice.OK() {
		t.Fatalf("duplicate favorite notice = %+v", m.notice)
	}
	if len(m.ledger.Favorites()) != 1 {
		t.Fatalf("favorites = %v", m.ledger.Favorites())
	}

	if !strings.Contains(m.View(), "Recent Conversions") {
		t.Error("view should list recent conversions")
	}
}

func TestRecordWithoutResultWarns(t *testing.T) {
	m := press(newTestModel(), key(tea.KeyCtrlA))
	if m.notice == nil || m.notice.Level != ledger.LevelWarning {
		t.Fatalf("notice = %+v", m.notice)
	}
	if len(m.ledger.History()) != 0 {
		t.Fatal("history should be empty")
	}
}

func TestInvalidValue(t *testing.T) {
	m := press(newTestModel(), runes("1e"), key(tea.KeyEnter))
	if m.result != nil || m.notice == nil || m.notice.OK() {
		t.Fatalf("result = %+v, notice = %+v", m.result, m.notice)
	}
	m = press(m, key(tea.KeyBackspace), key(tea.KeyEnter))
	if m.result == nil || m.result.Value != 1 {
		t.Fatalf("result = %+v", m.result)
	}
}

func TestPickCategoryAndConversion(t *testing.T) {
	m := newTestModel()

	// Focus the category field and move to Temperature.
	m = press(m, key(tea.KeyUp), key(tea.KeyUp), key(tea.KeyRight), key(tea.KeyRight))
	if m.category() != catalog.Temperature {
		t.Fatalf("category = %s", m.category())
	}
	m = press(m, key(tea.KeyDown), key(tea.KeyRight))
	if m.conversion().Key != "f-c" {
		t.Fatalf("conversion = %s", m.conversion().Key)
	}
	m = press(m, key(tea.KeyDown), runes("212"), key(tea.KeyEnter))
	if m.result == nil || m.result.Output != 100 {
		t.Fatalf("result = %+v", m.result)
	}

	// Changing the category drops the stale result.
	m = press(m, key(tea.KeyUp), key(tea.KeyUp), key(tea.KeyLeft))
	if m.result != nil || m.category() != catalog.Weight {
		t.Fatalf("category = %s, result = %+v", m.category(), m.result)
	}
}

func TestThemeToggle(t *testing.T) {
	m := press(newTestModel(), key(tea.KeyCtrlT))
	if m.ledger.Theme() != ledger.ThemeDark {
		t.Fatalf("theme = %s", m.ledger.Theme())
	}
	m = press(m, key(tea.KeyCtrlT))
	if m.ledger.Theme() != ledger.ThemeLight {
		t.Fatalf("theme = %s", m.ledger.Theme())
	}
}

func TestFeedback(t *testing.T) {
	m := press(newTestModel(), key(tea.KeyDown))
	if m.focus != fieldFeedback {
		t.Fatalf("focus = %d", m.focus)
	}

	m = press(m, key(tea.KeySpace), key(tea.KeyEnter))
	if m.notice == nil || m.notice.OK() {
		t.Fatalf("blank feedback notice = %+v", m.notice)
	}
	if m.feedback != " " {
		t.Fatalf("blank feedback should stay in the field, got %q", m.feedback)
	}

	m = press(m, key(tea.KeyBackspace), runes("good"), key(tea.KeySpace), runes("app"), key(tea.KeyEnter))
	if m.notice == nil || !m.notice.OK() {
		t.Fatalf("feedback notice = %+v", m.notice)
	}
	if m.feedback != "" || m.ledger.Feedback() != "" {
		t.Fatalf("feedback field not cleared: %q", m.feedback)
	}
}

func TestQuit(t *testing.T) {
	_, cmd := newTestModel().Update(key(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("esc should return tea.Quit")
	}
}

func TestImportedHistory(t *testing.T) {
	m := New(catalog.Default(), Options{
		Rand:    rand.New(rand.NewSource(1)),
		History: "1.0000 Miles = 1.6090 kilometers\n100.0000 Celsius = 212.0000 °F",
	})
	if got := m.ledger.History(); len(got) != 2 || got[1] != "100.0000 Celsius = 212.0000 °F" {
		t.Fatalf("history = %q", got)
	}

	m = press(m, runes("1"), key(tea.KeyEnter), key(tea.KeyCtrlA))
	if got := m.ledger.RecentHistory(1); len(got) != 1 || got[0] != "1.0000 Kilometers = 0.6215 miles" {
		t.Fatalf("recent = %q", got)
	}
}
