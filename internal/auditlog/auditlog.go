// Package auditlog records who did what to which inspection record. Events
// are append-only and separate from the per-record audit columns: the record
// keeps only its latest edit, the log keeps every action.
package auditlog

import (
	"context"
	"time"
)

// Action names one auditable operation.
type Action string

const (
	ActionSubmitted         Action = "inspection_submitted"
	ActionEdited            Action = "inspection_edited"
	ActionDuplicateRejected Action = "duplicate_rejected"
)

// Event is emitted by the inspection service after each operation.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    Action    `json:"action"`
	RecordID  string    `json:"record_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// Store is the append-only event sink.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByRecord(ctx context.Context, recordID string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
