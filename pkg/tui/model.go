// Package tui is the interactive terminal form of the unit converter. It
// owns one local ledger for the lifetime of the program.
package tui

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/ledger"
)

type field int

const (
	fieldCategory field = iota
	fieldConversion
	fieldValue
	fieldFeedback
	fieldCount
)

var fieldLabels = [fieldCount]string{"Category", "Conversion", "Value", "Feedback"}

// Options configure a new Model.
type Options struct {
	Theme ledger.Theme
	// RecentCount is how many history entries are shown. Zero means
	// ledger.DefaultRecentCount.
	RecentCount int
	// Rand picks fun facts. Nil uses the global source.
	Rand *rand.Rand
	// History is previously exported history text loaded before the form
	// starts. Empty means a fresh history.
	History string
}

// Model is the bubbletea model of the converter form.
type Model struct {
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	recent  int
	rng     *rand.Rand

	categories []catalog.Category
	catIdx     int
	convIdx    int
	value      string
	feedback   string
	focus      field

	result *catalog.Result
	fact   string
	notice *ledger.Notice

	styles styles
	width  int
}

func New(cat *catalog.Catalog, opts Options) Model {
	recent := opts.RecentCount
	if recent <= 0 {
		recent = ledger.DefaultRecentCount
	}
	l := ledger.New(opts.Theme)
	if opts.History != "" {
		l.ImportHistory(opts.History)
	}
	return Model{
		catalog:    cat,
		ledger:     l,
		recent:     recent,
		rng:        opts.Rand,
		categories: cat.Categories(),
		focus:      fieldValue,
		fact:       catalog.RandomFact(opts.Rand),
		styles:     newStyles(l.Theme()),
	}
}

// Ledger returns the ledger of this session, e.g. to export it on exit.
func (m Model) Ledger() *ledger.Ledger {
	return m.ledger
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) category() catalog.Category {
	return m.categories[m.catIdx]
}

func (m Model) conversions() []catalog.Conversion {
	convs, _ := m.catalog.Conversions(m.category())
	return convs
}

func (m Model) conversion() catalog.Conversion {
	return m.conversions()[m.convIdx]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		m.focus = (m.focus + 1) % fieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		m.focus = (m.focus + fieldCount - 1) % fieldCount
	case tea.KeyLeft:
		m.pick(-1)
	case tea.KeyRight:
		m.pick(1)
	case tea.KeyEnter:
		if m.focus == fieldFeedback {
			n := m.ledger.SubmitFeedback(m.feedback)
			m.feedback = m.ledger.Feedback()
			m.notice = &n
		} else {
			m.convert()
		}
	case tea.KeyCtrlA:
		if m.result == nil {
			m.warn("Convert a value first.")
			break
		}
		m.ledger.AppendHistory(m.result.Entry())
		m.notice = nil
	case tea.KeyCtrlF:
		if m.result == nil {
			m.warn("Convert a value first.")
			break
		}
		n := m.ledger.AddFavorite(m.result.Entry())
		m.notice = &n
	case tea.KeyCtrlT:
		m.styles = newStyles(m.ledger.ToggleTheme())
	case tea.KeyCtrlR:
		m.fact = catalog.RandomFact(m.rng)
	case tea.KeyBackspace:
		m.backspace()
	case tea.KeySpace:
		if m.focus == fieldFeedback {
			m.feedback += " "
			m.ledger.SetFeedback(m.feedback)
		}
	case tea.KeyRunes:
		m.typeRunes(msg.Runes)
	}
	return m, nil
}

// pick moves the selection of the category or conversion field by delta.
func (m *Model) pick(delta int) {
	switch m.focus {
	case fieldCategory:
		m.catIdx = wrap(m.catIdx+delta, len(m.categories))
		m.convIdx = 0
		m.result = nil
	case fieldConversion:
		m.convIdx = wrap(m.convIdx+delta, len(m.conversions()))
		m.result = nil
	}
}

func (m *Model) convert() {
	v := 0.0
	if s := strings.TrimSpace(m.value); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			m.warn("Please enter a valid number.")
			return
		}
		v = f
	}
	r := m.conversion().Apply(v)
	m.result = &r
	m.notice = nil
}

func (m *Model) backspace() {
	switch m.focus {
	case fieldValue:
		m.value = dropLast(m.value)
	case fieldFeedback:
		m.feedback = dropLast(m.feedback)
		m.ledger.SetFeedback(m.feedback)
	}
}

func (m *Model) typeRunes(rs []rune) {
	switch m.focus {
	case fieldValue:
		for _, r := range rs {
			if strings.ContainsRune("0123456789.-+eE", r) {
				m.value += string(r)
			}
		}
	case fieldFeedback:
		m.feedback += string(rs)
		m.ledger.SetFeedback(m.feedback)
	}
}

func (m *Model) warn(msg string) {
	n := ledger.Warning(msg)
	m.notice = &n
}

func (m Model) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Header.Render("🌐 Advanced Unit Converter"))
	b.WriteString("\n")

	chips := make([]string, len(m.categories))
	for i, c := range m.categories {
		st := s.Chip
		if i == m.catIdx {
			st = s.ChipOn
		}
		chips[i] = st.Render(c.Icon() + " " + c.String())
	}
	b.WriteString(m.label(fieldCategory) + lipgloss.JoinHorizontal(lipgloss.Top, chips...) + "\n")

	b.WriteString(m.label(fieldConversion) + "◀ " + m.conversion().Label + " ▶\n")
	b.WriteString(m.label(fieldValue) + m.input(m.value, fieldValue) + "\n")

	if m.result != nil {
		b.WriteString(s.Result.Render(m.result.Entry()) + "\n")
	}

	ref := []string{s.Subtitle.Render("Quick Reference")}
	ref = append(ref, catalog.QuickReference(m.category())...)
	b.WriteString(s.Panel.Render(strings.Join(ref, "\n")) + "\n")

	b.WriteString(s.Fact.Render("💡 Did you know? "+m.fact) + "\n")

	b.WriteString(m.list("Recent Conversions", m.ledger.RecentHistory(m.recent)))
	b.WriteString(m.list("Favorites", m.ledger.Favorites()))

	b.WriteString("\n" + m.label(fieldFeedback) + m.input(m.feedback, fieldFeedback) + "\n")

	if m.notice != nil {
		st := s.Success
		if !m.notice.OK() {
			st = s.Warning
		}
		b.WriteString(st.Render(m.notice.Message) + "\n")
	}

	b.WriteString("\n" + s.Muted.Render(
		"tab/↑↓ field • ←→ pick • enter convert/submit • ctrl+a history • ctrl+f favorite • ctrl+t theme • ctrl+r fact • esc quit"))

	app := s.App
	if m.width > 0 {
		app = app.Width(m.width)
	}
	return app.Render(b.String())
}

func (m Model) label(f field) string {
	st := m.styles.Label
	prefix := "  "
	if m.focus == f {
		st = m.styles.Focused
		prefix = "› "
	}
	return st.Render(fmt.Sprintf("%s%-11s", prefix, fieldLabels[f]+":"))
}

func (m Model) input(text string, f field) string {
	if m.focus == f {
		return text + "█"
	}
	return text
}

func (m Model) list(title string, entries []string) string {
	if len(entries) == 0 {
		return ""
	}
	lines := []string{m.styles.Subtitle.Render(title)}
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, e))
	}
	return m.styles.Panel.Render(strings.Join(lines, "\n")) + "\n"
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func dropLast(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// Run starts the interactive form and blocks until the user quits.
func Run(cat *catalog.Catalog, opts Options) (*ledger.Ledger, error) {
	final, err := tea.NewProgram(New(cat, opts), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	return final.(Model).Ledger(), nil
}
