package daemon

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/unitconv/pkg/events"
	"github.com/charlie0129/unitconv/pkg/ledger"
	"github.com/charlie0129/unitconv/pkg/types"
)

// withLedger runs fn on the ledger of the session named in the path. It
// writes the error response itself and reports whether fn ran.
func (s *Server) withLedger(c *gin.Context, fn func(l *ledger.Ledger)) bool {
	err := s.store.With(c.Param("id"), func(l *ledger.Ledger) error {
		fn(l)
		return nil
	})
	if err != nil {
		abort(c, statusFor(err), err)
		return false
	}
	return true
}

func (s *Server) createSession(c *gin.Context) {
	info := s.store.Create()
	logrus.WithField("session", info.ID).Info("session created")
	s.hub.Publish(events.SessionCreated, events.SessionEvent{Session: info.ID, Ts: info.CreatedAt.Unix()})
	c.IndentedJSON(http.StatusCreated, info)
}

func (s *Server) listSessions(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.store.List())
}

func (s *Server) getSession(c *gin.Context) {
	snap, err := s.store.Get(c.Param("id"))
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, snap)
}

func (s *Server) deleteSession(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.Delete(id); err != nil {
		abort(c, statusFor(err), err)
		return
	}
	logrus.WithField("session", id).Info("session destroyed")
	s.hub.Publish(events.SessionDestroyed, events.SessionEvent{Session: id, Ts: time.Now().Unix()})
	c.IndentedJSON(http.StatusOK, "ok")
}

func (s *Server) getHistory(c *gin.Context) {
	recent := -1
	if q := c.Query("recent"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			abort(c, http.StatusBadRequest, fmt.Errorf("recent must be a non-negative integer, got %q", q))
			return
		}
		recent = n
	}
	// recent=0 means "the configured display count".
	if recent == 0 {
		recent = s.conf.HistoryDisplayCount()
	}

	var entries []string
	ok := s.withLedger(c, func(l *ledger.Ledger) {
		if recent > 0 {
			entries = l.RecentHistory(recent)
		} else {
			entries = l.History()
		}
	})
	if !ok {
		return
	}
	if entries == nil {
		entries = []string{}
	}
	c.IndentedJSON(http.StatusOK, types.HistoryResponse{Entries: entries})
}

func (s *Server) appendHistory(c *gin.Context) {
	var req types.EntryRequest
	if err := c.BindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if !s.withLedger(c, func(l *ledger.Ledger) { l.AppendHistory(req.Entry) }) {
		return
	}

	s.hub.Publish(events.HistoryAppended, events.LedgerEvent{Session: c.Param("id"), Entry: req.Entry, Accepted: true, Ts: time.Now().Unix()})
	c.IndentedJSON(http.StatusCreated, "ok")
}

func (s *Server) exportHistory(c *gin.Context) {
	var text string
	if !s.withLedger(c, func(l *ledger.Ledger) { text = l.ExportHistory() }) {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="conversion_history.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (s *Server) importHistory(c *gin.Context) {
	b, err := c.GetRawData()
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	text := string(b)

	if s.conf.ValidateImport() && text != "" {
		if line, err := s.catalog.ValidateHistory(text); err != nil {
			abort(c, http.StatusBadRequest, fmt.Errorf("line %d: %w", line, err))
			return
		}
	}

	var count int
	if !s.withLedger(c, func(l *ledger.Ledger) { count = l.ImportHistory(text) }) {
		return
	}

	logrus.WithFields(logrus.Fields{"session": c.Param("id"), "count": count}).Info("history imported")
	s.hub.Publish(events.HistoryImported, events.LedgerEvent{Session: c.Param("id"), Count: count, Accepted: true, Ts: time.Now().Unix()})
	c.IndentedJSON(http.StatusOK, types.ImportResponse{Count: count})
}

func (s *Server) getFavorites(c *gin.Context) {
	var favs []string
	if !s.withLedger(c, func(l *ledger.Ledger) { favs = l.Favorites() }) {
		return
	}
	if favs == nil {
		favs = []string{}
	}
	c.IndentedJSON(http.StatusOK, types.HistoryResponse{Entries: favs})
}

func (s *Server) addFavorite(c *gin.Context) {
	var req types.EntryRequest
	if err := c.BindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	var n ledger.Notice
	if !s.withLedger(c, func(l *ledger.Ledger) { n = l.AddFavorite(req.Entry) }) {
		return
	}

	s.hub.Publish(events.FavoriteAdded, events.LedgerEvent{Session: c.Param("id"), Entry: req.Entry, Accepted: n.OK(), Ts: time.Now().Unix()})
	c.IndentedJSON(http.StatusOK, n)
}

func (s *Server) getTheme(c *gin.Context) {
	var t ledger.Theme
	if !s.withLedger(c, func(l *ledger.Ledger) { t = l.Theme() }) {
		return
	}
	c.IndentedJSON(http.StatusOK, types.ThemeResponse{Theme: t})
}

func (s *Server) toggleTheme(c *gin.Context) {
	var t ledger.Theme
	if !s.withLedger(c, func(l *ledger.Ledger) { t = l.ToggleTheme() }) {
		return
	}

	s.hub.Publish(events.ThemeToggled, events.LedgerEvent{Session: c.Param("id"), Theme: string(t), Accepted: true, Ts: time.Now().Unix()})
	c.IndentedJSON(http.StatusOK, types.ThemeResponse{Theme: t})
}

func (s *Server) submitFeedback(c *gin.Context) {
	var req types.FeedbackRequest
	if err := c.BindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	var n ledger.Notice
	if !s.withLedger(c, func(l *ledger.Ledger) { n = l.SubmitFeedback(req.Text) }) {
		return
	}

	if n.OK() {
		// Feedback is acknowledged, not stored.
		logrus.WithField("session", c.Param("id")).Infof("feedback received: %s", req.Text)
	}
	s.hub.Publish(events.FeedbackSubmitted, events.LedgerEvent{Session: c.Param("id"), Accepted: n.OK(), Ts: time.Now().Unix()})
	c.IndentedJSON(http.StatusOK, n)
}
