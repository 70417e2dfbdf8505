package events

import (
	"encoding/json"
	"testing"
)

func TestPublishSubscribe(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	h.Publish("hello")
	select {
	case got := <-ch:
		if got != "hello" {
			t.Errorf("expected hello, got %q", got)
		}
	default:
		t.Fatal("expected buffered event")
	}
}

func TestPublishDropsWhenSlow(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	// Channel buffer is 10; extra events are dropped, never blocking.
	for i := 0; i < 25; i++ {
		h.Publish("evt")
	}
	if len(ch) != 10 {
		t.Errorf("expected 10 buffered, got %d", len(ch))
	}
}

func TestMakeEventEnvelope(t *testing.T) {
	raw := MakeEvent("req-1", TypeJobImported, 1, map[string]any{"id": 7})

	var e Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Type != TypeJobImported || e.Version != 1 || e.RequestID != "req-1" {
		t.Errorf("unexpected envelope: %+v", e)
	}
	if e.At.IsZero() {
		t.Error("expected timestamp")
	}

	var data map[string]any
	if err := json.Unmarshal(e.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data["id"] != float64(7) {
		t.Errorf("expected id 7, got %v", data["id"])
	}
}
