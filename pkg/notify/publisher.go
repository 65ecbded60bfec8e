package notify

import (
	"context"
	"time"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/logger"
	"rnd-intake-be/pkg/events"
)

// Publisher emits request lifecycle events. Every method is fire-and-forget:
// publish failures are logged and never reach the caller.
type Publisher interface {
	PublishRequestCreated(ctx context.Context, request *entity.Request)
	PublishStageTargetUpdated(ctx context.Context, request *entity.Request, target *entity.StageTarget, previous *time.Time, actor entity.Actor)
}

// DefaultPublishTimeout bounds how long a mutation waits on the bus.
const DefaultPublishTimeout = 2 * time.Second

// EventPublisher implements Publisher on top of any events.Publisher
type EventPublisher struct {
	publisher events.Publisher
	logger    logger.ILogger
	baseURL   string
	timeout   time.Duration
}

// NewEventPublisher creates a new event publisher. baseURL is the web client
// root used to build detail links.
func NewEventPublisher(publisher events.Publisher, logger logger.ILogger, baseURL string) *EventPublisher {
	return &EventPublisher{
		publisher: publisher,
		logger:    logger,
		baseURL:   baseURL,
		timeout:   DefaultPublishTimeout,
	}
}

// WithTimeout overrides DefaultPublishTimeout.
func (p *EventPublisher) WithTimeout(d time.Duration) *EventPublisher {
	p.timeout = d
	return p
}

// publish detaches from the caller's cancellation, since the row is already
// committed, and caps the wait at p.timeout.
func (p *EventPublisher) publish(ctx context.Context, evt events.Event) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	return p.publisher.Publish(ctx, evt)
}

func (p *EventPublisher) detailURL(request *entity.Request) string {
	if p.baseURL == "" {
		return ""
	}
	return p.baseURL + "/requests/" + request.Id.String()
}

// PublishRequestCreated emits REQUEST_CREATED
func (p *EventPublisher) PublishRequestCreated(ctx context.Context, request *entity.Request) {
	if p.publisher == nil {
		return
	}

	now := time.Now().UTC()
	evt := events.BaseEvent{
		Type: events.RequestCreated,
		Data: map[string]interface{}{
			"id":                 request.Id.String(),
			"title":              request.Title,
			"created_by_user_id": request.CreatedByUserId,
			"created_by_name":    derefString(request.CreatedByName),
			"product_area":       string(request.ProductArea),
			"importance_flag":    string(request.ImportanceFlag),
			"customer_deadline":  request.CustomerDeadline.UTC().Format(time.RFC3339),
			"detail_url":         p.detailURL(request),
		},
		OccurredAt: now,
	}

	if err := p.publish(ctx, evt); err != nil {
		p.logger.Error("NOTIFY", "Failed to publish REQUEST_CREATED event", map[string]interface{}{
			"request_id": request.Id.String(),
			"error":      err.Error(),
		})
	}
}

// PublishStageTargetUpdated emits STAGE_TARGET_UPDATED
func (p *EventPublisher) PublishStageTargetUpdated(ctx context.Context, request *entity.Request, target *entity.StageTarget, previous *time.Time, actor entity.Actor) {
	if p.publisher == nil {
		return
	}

	prev := ""
	if previous != nil {
		prev = previous.UTC().Format(time.RFC3339)
	}

	now := time.Now().UTC()
	evt := events.BaseEvent{
		Type: events.StageTargetUpdated,
		Data: map[string]interface{}{
			"id":                 request.Id.String(),
			"title":              request.Title,
			"stage":              string(target.Stage),
			"target_date":        target.TargetDate.UTC().Format(time.RFC3339),
			"previous_target":    prev,
			"changed_by_user_id": actor.UserId,
			"changed_by_name":    actor.Name,
			"detail_url":         p.detailURL(request),
		},
		OccurredAt: now,
	}

	if err := p.publish(ctx, evt); err != nil {
		p.logger.Error("NOTIFY", "Failed to publish STAGE_TARGET_UPDATED event", map[string]interface{}{
			"request_id": request.Id.String(),
			"stage":      string(target.Stage),
			"error":      err.Error(),
		})
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
