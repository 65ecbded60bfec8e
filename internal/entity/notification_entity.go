package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationSent    NotificationStatus = "SENT"
	NotificationSkipped NotificationStatus = "SKIPPED"
	NotificationFailed  NotificationStatus = "FAILED"
)

// ParseNotificationStatus accepts any case; ok is false for unknown values.
func ParseNotificationStatus(s string) (NotificationStatus, bool) {
	switch st := NotificationStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case NotificationSent, NotificationSkipped, NotificationFailed:
		return st, true
	}
	return "", false
}

// NotificationLog is one dispatch attempt of the email sink.
type NotificationLog struct {
	Id         uuid.UUID
	EventType  string
	Recipients []string
	Subject    string
	Status     NotificationStatus
	Error      *string
	Payload    map[string]interface{}
	CreatedAt  time.Time
}
