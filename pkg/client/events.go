package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/unitconv/pkg/events"
)

// SubscribeEvents connects to the daemon event stream. If sessionID is not
// empty only events of that session are delivered. The returned channel is
// closed when ctx is done or the daemon closes the stream.
func (c *Client) SubscribeEvents(ctx context.Context, sessionID string) (<-chan events.Event, error) {
	path := "/events"
	if sessionID != "" {
		path += "?session=" + url.QueryEscape(sessionID)
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, "", "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to events: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, fmt.Errorf("got %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	ch := make(chan events.Event)
	go func() {
		defer close(ch)
		defer resp.Body.Close()
		err := readEvents(resp.Body, func(ev events.Event) bool {
			select {
			case ch <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err != nil && ctx.Err() == nil {
			logrus.WithError(err).Warn("event stream ended")
		}
	}()
	return ch, nil
}

// readEvents parses a server-sent event stream and calls emit for every
// complete event until emit returns false or r is exhausted.
func readEvents(r io.Reader, emit func(events.Event) bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var name string
	var data []string
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if name == "" && len(data) == 0 {
				continue
			}
			ev := events.Event{Name: name, Data: []byte(strings.Join(data, "\n"))}
			name, data = "", nil
			if !emit(ev) {
				return nil
			}
		case strings.HasPrefix(line, ":"):
			// comment
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	return sc.Err()
}
