package events

import "encoding/json"

// Event name constants
const (
	SessionCreated    = "session.created"
	SessionDestroyed  = "session.destroyed"
	SessionExpired    = "session.expired"
	HistoryAppended   = "history.appended"
	HistoryImported   = "history.imported"
	FavoriteAdded     = "favorite.added"
	ThemeToggled      = "theme.toggled"
	FeedbackSubmitted = "feedback.submitted"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// SessionEvent is the payload of session lifecycle events.
type SessionEvent struct {
	Session string `json:"session"`
	Ts      int64  `json:"ts"`
}

// LedgerEvent is the payload of events that change a session's ledger.
type LedgerEvent struct {
	Session string `json:"session"`
	// Entry is the history or favorite entry, if any.
	Entry string `json:"entry,omitempty"`
	// Count is the number of imported history lines.
	Count int    `json:"count,omitempty"`
	Theme string `json:"theme,omitempty"`
	// Accepted is false when the operation was rejected with a warning.
	Accepted bool  `json:"accepted"`
	Ts       int64 `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.LedgerEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.Session, payload.Entry)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
