package notify

import (
	"encoding/json"
	"fmt"
	"strings"

	"rnd-intake-be/pkg/events"
)

const missing = "-"

// Render builds the mail subject and plain-text body for an event payload.
// Unknown event types fall back to a generic subject and a JSON body.
func Render(eventType string, data map[string]interface{}) (subject, body string) {
	title := firstOf(data, "title", "id")

	switch eventType {
	case events.RequestCreated:
		subject = fmt.Sprintf("[R&D 요청 등록] %s", title)
		body = strings.Join([]string{
			"제목: " + str(data, "title"),
			"작성자: " + orMissing(firstOf(data, "created_by_name", "created_by_user_id")),
			"제품군: " + orMissing(str(data, "product_area")),
			"중요도: " + orMissing(str(data, "importance_flag")),
			"고객 마감일: " + orMissing(str(data, "customer_deadline")),
			"바로가기: " + orMissing(str(data, "detail_url")),
		}, "\n")
	case events.StageTargetUpdated:
		subject = fmt.Sprintf("[R&D 목표일 변경] %s (%s)", title, str(data, "stage"))
		body = strings.Join([]string{
			"요청 ID: " + str(data, "id"),
			"제목: " + str(data, "title"),
			"단계: " + str(data, "stage"),
			"새 목표일: " + str(data, "target_date"),
			"이전 목표일: " + orMissing(str(data, "previous_target")),
			"변경자: " + orMissing(firstOf(data, "changed_by_name", "changed_by_user_id")),
			"바로가기: " + orMissing(str(data, "detail_url")),
		}, "\n")
	default:
		subject = fmt.Sprintf("[알림] %s", eventType)
		raw, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			body = fmt.Sprintf("%v", data)
		} else {
			body = string(raw)
		}
	}
	return subject, body
}

func str(data map[string]interface{}, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func firstOf(data map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v := str(data, k); v != "" {
			return v
		}
	}
	return ""
}

func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}
