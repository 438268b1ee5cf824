package amqp

import (
	"encoding/json"
	"time"
)

// RowMirrorMessage asks the worker to copy one ledger row to the Google
// Sheets mirror. It carries only the row id; the worker loads the row from
// the local store.
type RowMirrorMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRowMirrorMessage(id int64) *RowMirrorMessage {
	return &RowMirrorMessage{ID: id, Timestamp: time.Now()}
}

func (m *RowMirrorMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RowMirrorMessageFromJSON(data []byte) (*RowMirrorMessage, error) {
	var msg RowMirrorMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
