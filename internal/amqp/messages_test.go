package amqp

import (
	"testing"
	"time"
)

func TestRowMirrorMessageJSON(t *testing.T) {
	msg := NewRowMirrorMessage(42)
	if msg.ID != 42 {
		t.Fatalf("id = %d", msg.ID)
	}
	if msg.Timestamp.IsZero() || time.Since(msg.Timestamp) > time.Minute {
		t.Fatalf("timestamp not set: %v", msg.Timestamp)
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	got, err := RowMirrorMessageFromJSON(body)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != msg.ID || !got.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("decoded %+v, want %+v", got, msg)
	}
}

func TestRowMirrorMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := RowMirrorMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("expected decode error")
	}
}
