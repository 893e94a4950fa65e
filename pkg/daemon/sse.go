package daemon

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/unitconv/pkg/events"
)

// streamEvents streams ledger and session events as server-sent events.
// ?session=<id> limits the stream to one session.
func (s *Server) streamEvents(c *gin.Context) {
	filter := c.Query("session")

	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	logrus.WithFields(logrus.Fields{
		"session":     filter,
		"subscribers": s.hub.Subscribers(),
	}).Debug("event subscriber connected")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			if filter != "" && sessionOf(ev) != filter {
				return true
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		}
	})

	logrus.WithField("session", filter).Debug("event subscriber disconnected")
}

func sessionOf(ev events.Event) string {
	var p struct {
		Session string `json:"session"`
	}
	if err := json.Unmarshal(ev.Data, &p); err != nil {
		return ""
	}
	return p.Session
}
