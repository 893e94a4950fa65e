package events

import (
	"testing"
)

func TestPublishSubscribe(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	h.Publish(FavoriteAdded, LedgerEvent{Session: "s1", Entry: "e", Accepted: true, Ts: 1})

	ev := <-ch
	if ev.Name != FavoriteAdded {
		t.Fatalf("got event %q", ev.Name)
	}
	p, err := DecodeAs[LedgerEvent](ev)
	if err != nil {
		t.Fatal(err)
	}
	if p.Session != "s1" || p.Entry != "e" || !p.Accepted {
		t.Fatalf("unexpected payload %+v", p)
	}
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()

	for i := 0; i < 100; i++ {
		h.Publish(HistoryAppended, LedgerEvent{Session: "s"})
	}
	if got := len(ch); got != cap(ch) {
		t.Fatalf("buffered %d events, want %d", got, cap(ch))
	}

	h.Unsubscribe(ch)
	h.Unsubscribe(ch)
	if h.Subscribers() != 0 {
		t.Fatalf("subscribers = %d", h.Subscribers())
	}
	for range ch {
	}
}

func TestNilHubPublish(t *testing.T) {
	var h *EventHub
	h.Publish(SessionCreated, SessionEvent{Session: "s"})
}

func TestDecodeEmpty(t *testing.T) {
	v, err := DecodeAs[SessionEvent](Event{Name: SessionCreated})
	if err != nil || v.Session != "" {
		t.Fatalf("got %+v %v", v, err)
	}
}
