package ledger

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultRecentCount is how many history entries are shown by default.
const DefaultRecentCount = 5

// Theme is the color scheme of a session.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("theme must be %q or %q, got %q", ThemeLight, ThemeDark, s)
	}
}

// Toggled returns the other theme. Anything that is not dark toggles to dark.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Ledger is the mutable state of one session: theme, conversion history,
// favorites and the feedback field. A Ledger is owned by exactly one session
// and is not safe for concurrent use.
type Ledger struct {
	theme     Theme
	history   []string
	favorites []string
	feedback  string
}

// New creates an empty ledger with the given theme.
func New(theme Theme) *Ledger {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	return &Ledger{theme: theme}
}

func (l *Ledger) Theme() Theme {
	return l.theme
}

// ToggleTheme flips between light and dark and returns the new theme.
func (l *Ledger) ToggleTheme() Theme {
	l.theme = l.theme.Toggled()
	return l.theme
}

// AppendHistory records an entry. History is append-only.
func (l *Ledger) AppendHistory(entry string) {
	l.history = append(l.history, entry)
}

// History returns a copy of all history entries, oldest first.
func (l *Ledger) History() []string {
	return slices.Clone(l.history)
}

// RecentHistory returns the last n entries, newest first.
func (l *Ledger) RecentHistory(n int) []string {
	return recentOf(l.history, n)
}

func recentOf(history []string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	start := max(len(history)-n, 0)
	recent := slices.Clone(history[start:])
	slices.Reverse(recent)
	return recent
}

// ExportHistory joins all entries with newlines.
func (l *Ledger) ExportHistory() string {
	return strings.Join(l.history, "\n")
}

// ImportHistory replaces the whole history with the lines of text. Lines are
// taken verbatim. Empty text clears the history, so that exporting and
// re-importing an empty history yields an empty history. The one history that
// does not survive the round trip is a single empty entry: it exports as ""
// and comes back empty.
func (l *Ledger) ImportHistory(text string) int {
	if text == "" {
		l.history = nil
		return 0
	}
	l.history = strings.Split(text, "\n")
	return len(l.history)
}

// AddFavorite adds entry to favorites unless an identical entry is already
// there, in which case it returns a warning and changes nothing.
func (l *Ledger) AddFavorite(entry string) Notice {
	if slices.Contains(l.favorites, entry) {
		return Warning("This conversion is already in your favorites.")
	}
	l.favorites = append(l.favorites, entry)
	return Success("Added to favorites!")
}

// Favorites returns a copy of the favorites in insertion order.
func (l *Ledger) Favorites() []string {
	return slices.Clone(l.favorites)
}

// SetFeedback stores the current draft of the feedback field.
func (l *Ledger) SetFeedback(draft string) {
	l.feedback = draft
}

func (l *Ledger) Feedback() string {
	return l.feedback
}

// SubmitFeedback acknowledges any text that is not blank and clears the
// feedback field. Blank text is rejected with a warning and kept in the field.
func (l *Ledger) SubmitFeedback(text string) Notice {
	l.feedback = text
	if strings.TrimSpace(text) == "" {
		return Warning("Please enter your feedback before submitting.")
	}
	l.feedback = ""
	return Success("Thank you for your feedback! We appreciate your input.")
}

// Snapshot is a point-in-time copy of a ledger.
type Snapshot struct {
	Theme     Theme    `json:"theme" yaml:"theme"`
	History   []string `json:"history" yaml:"history"`
	Favorites []string `json:"favorites" yaml:"favorites"`
	Feedback  string   `json:"feedback" yaml:"feedback"`
}

// RecentHistory returns the last n history entries of the snapshot, newest
// first.
func (s Snapshot) RecentHistory(n int) []string {
	return recentOf(s.History, n)
}

func (l *Ledger) Snapshot() Snapshot {
	s := Snapshot{
		Theme:     l.theme,
		History:   l.History(),
		Favorites: l.Favorites(),
		Feedback:  l.feedback,
	}
	if s.History == nil {
		s.History = []string{}
	}
	if s.Favorites == nil {
		s.Favorites = []string{}
	}
	return s
}
