package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.StageTransition("IDEATION", "REVIEW")
	m.StageTransition("IDEATION", "REVIEW")
	m.StageTransition("REVIEW", "REJECTED")
	m.StageTargetUpdated()
	m.RequestCreated("C_ARM")
	m.Notification("REQUEST_CREATED", ResultSkipped)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.stageTransitions.WithLabelValues("IDEATION", "REVIEW")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stageTransitions.WithLabelValues("REVIEW", "REJECTED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stageTargetUpdates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsCreated.WithLabelValues("C_ARM")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("REQUEST_CREATED", ResultSkipped)))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.StageTargetUpdated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "rnd_stage_target_updates_total 1"))
}
