package daemon

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/unitconv/pkg/events"
)

var sweepInterval = time.Minute

// sweepLoop discards idle sessions until ctx is done.
func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *Server) sweepOnce() []string {
	expired := s.store.Sweep()
	for _, id := range expired {
		logrus.WithField("session", id).Info("session expired")
		s.hub.Publish(events.SessionExpired, events.SessionEvent{Session: id, Ts: time.Now().Unix()})
	}
	if len(expired) > 0 {
		logrus.WithFields(logrus.Fields{
			"expired": len(expired),
			"live":    s.store.Len(),
		}).Debug("session sweep done")
	}
	return expired
}
