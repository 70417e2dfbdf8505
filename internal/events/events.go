package events

import (
	"encoding/json"
	"time"
)

// Event types published on the stream. The admin surface listens for these to
// refresh its queue and pop notification links.
const (
	TypeJobImported    = "job_imported"
	TypeJobApproved    = "job_approved"
	TypeJobRejected    = "job_rejected"
	TypeJobEdited      = "job_edited"
	TypeImportComplete = "import_complete"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
