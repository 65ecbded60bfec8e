package notify

import (
	"testing"

	"rnd-intake-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestRender_RequestCreated(t *testing.T) {
	subject, body := Render(events.RequestCreated, map[string]interface{}{
		"id":                 "r-1",
		"title":              "Low-dose mode",
		"created_by_user_id": "u-1",
		"product_area":       "C_ARM",
		"importance_flag":    "MUST",
		"customer_deadline":  "2025-06-30T00:00:00Z",
	})

	assert.Equal(t, "[R&D 요청 등록] Low-dose mode", subject)
	assert.Equal(t, "제목: Low-dose mode\n"+
		"작성자: u-1\n"+
		"제품군: C_ARM\n"+
		"중요도: MUST\n"+
		"고객 마감일: 2025-06-30T00:00:00Z\n"+
		"바로가기: -", body)
}

func TestRender_StageTargetUpdated(t *testing.T) {
	subject, body := Render(events.StageTargetUpdated, map[string]interface{}{
		"id":              "r-1",
		"title":           "Low-dose mode",
		"stage":           "REVIEW",
		"target_date":     "2025-07-01T00:00:00Z",
		"previous_target": "",
		"changed_by_name": "Kim",
		"detail_url":      "https://rnd.local/requests/r-1",
	})

	assert.Equal(t, "[R&D 목표일 변경] Low-dose mode (REVIEW)", subject)
	assert.Contains(t, body, "이전 목표일: -")
	assert.Contains(t, body, "변경자: Kim")
	assert.Contains(t, body, "바로가기: https://rnd.local/requests/r-1")
}

func TestRender_UnknownTypeFallsBackToJSON(t *testing.T) {
	subject, body := Render("SOMETHING_ELSE", map[string]interface{}{"id": "x"})
	assert.Equal(t, "[알림] SOMETHING_ELSE", subject)
	assert.JSONEq(t, `{"id":"x"}`, body)
}
