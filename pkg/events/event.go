package events

import (
	"context"
	"strings"
	"time"
)

const (
	RequestCreated     = "REQUEST_CREATED"
	StageTargetUpdated = "STAGE_TARGET_UPDATED"
)

// SubjectPrefix namespaces every event subject on the bus.
const SubjectPrefix = "events."

// AllSubjects matches every event.
const AllSubjects = SubjectPrefix + ">"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "REQUEST_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Handler processes one delivered event.
type Handler func(ctx context.Context, event Event) error

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

type Subscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler Handler) error
	Close()
}

func Subject(eventType string) string {
	return SubjectPrefix + eventType
}

func TypeFromSubject(subject string) string {
	return strings.TrimPrefix(subject, SubjectPrefix)
}

// MatchSubject applies NATS-style matching: a trailing ">" matches any
// remainder, "*" matches exactly one token.
func MatchSubject(pattern, subject string) bool {
	p := strings.Split(pattern, ".")
	s := strings.Split(subject, ".")
	for i, tok := range p {
		if tok == ">" {
			return len(s) > i
		}
		if i >= len(s) {
			return false
		}
		if tok != "*" && tok != s[i] {
			return false
		}
	}
	return len(p) == len(s)
}
