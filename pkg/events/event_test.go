package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSubject(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		want    bool
	}{
		{AllSubjects, "events.REQUEST_CREATED", true},
		{AllSubjects, "events", false},
		{"events.*", "events.STAGE_TARGET_UPDATED", true},
		{"events.*", "events.a.b", false},
		{"events.REQUEST_CREATED", "events.REQUEST_CREATED", true},
		{"events.REQUEST_CREATED", "events.STAGE_TARGET_UPDATED", false},
		{"other.>", "events.REQUEST_CREATED", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchSubject(tt.pattern, tt.subject))
		})
	}
}

func TestSubjectRoundTrip(t *testing.T) {
	assert.Equal(t, "events.REQUEST_CREATED", Subject(RequestCreated))
	assert.Equal(t, RequestCreated, TypeFromSubject(Subject(RequestCreated)))
}
