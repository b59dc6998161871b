// Package events publishes domain events after state changes commit.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	SubjectUserRegistered  = "qa.user.registered"
	SubjectUserDeleted     = "qa.user.deleted"
	SubjectQuestionDeleted = "qa.question.deleted"
	SubjectAnswerDeleted   = "qa.answer.deleted"
	SubjectCommentDeleted  = "qa.comment.deleted"
)

// Event is the envelope put on the wire.
type Event struct {
	EventID    string         `json:"event_id"`
	EventName  string         `json:"event_name"`
	EntityID   int64          `json:"entity_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Properties map[string]any `json:"properties,omitempty"`
}

// New stamps an event with a fresh id and the current time. The subject
// doubles as the event name.
func New(subject string, entityID int64, props map[string]any) Event {
	return Event{
		EventID:    uuid.NewString(),
		EventName:  subject,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Properties: props,
	}
}

// Publisher delivers events. Callers treat delivery as best effort: a
// publish error is logged, never returned to the client.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close()
}

// Nop drops every event. It is used when NATS is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close()                               {}
