package service

import (
	"context"
	"strings"

	"rnd-intake-be/internal/dto"
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/apperror"
	"rnd-intake-be/internal/pkg/logger"
	"rnd-intake-be/internal/pkg/mailer"
	"rnd-intake-be/internal/repository/specification"
	"rnd-intake-be/internal/repository/unitofwork"
	"rnd-intake-be/pkg/events"
	"rnd-intake-be/pkg/metrics"
	"rnd-intake-be/pkg/notify"
)

// NotifierDurableName identifies the email consumer on the bus.
const NotifierDurableName = "rnd-notifier"

const (
	DefaultLogLimit = 50
	MaxLogLimit     = 200
)

// NotificationService turns bus events into emails and records every
// dispatch attempt. It never returns an error to the bus, so events are
// never redelivered.
type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber events.Subscriber
	mailer     mailer.IEmailService
	recipients []string
	metrics    *metrics.Metrics
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber events.Subscriber,
	mailer mailer.IEmailService,
	recipients []string,
	metrics *metrics.Metrics,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		mailer:     mailer,
		recipients: recipients,
		metrics:    metrics,
		logger:     log,
	}
}

// Start subscribes to every event subject.
func (s *NotificationService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, events.AllSubjects, NotifierDurableName, s.handleEvent); err != nil {
		s.logger.Error("NOTIFICATION", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("NOTIFICATION", "Notification service started, listening to "+events.AllSubjects, nil)
	return nil
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := events.TypeFromSubject(event.EventType())
	payload := event.Payload()
	subject, body := notify.Render(typeCode, payload)

	entry := &entity.NotificationLog{
		EventType:  typeCode,
		Recipients: s.recipients,
		Subject:    subject,
		Payload:    payload,
	}

	result := metrics.ResultSent
	switch {
	case len(s.recipients) == 0:
		result = metrics.ResultSkipped
		entry.Status = entity.NotificationSkipped
		s.logger.Info("NOTIFICATION", "No recipients configured, event skipped", map[string]interface{}{"type": typeCode})
	case !s.mailer.IsConfigured():
		result = metrics.ResultSkipped
		entry.Status = entity.NotificationSkipped
		s.logger.Info("NOTIFICATION", "SMTP not configured, event skipped", map[string]interface{}{"type": typeCode})
	default:
		if err := s.mailer.Send(s.recipients, subject, body); err != nil {
			result = metrics.ResultFailed
			entry.Status = entity.NotificationFailed
			msg := err.Error()
			entry.Error = &msg
			s.logger.Error("NOTIFICATION", "Failed to send notification mail", map[string]interface{}{
				"type":  typeCode,
				"error": msg,
			})
		} else {
			entry.Status = entity.NotificationSent
		}
	}

	if err := s.uowFactory.NewUnitOfWork(ctx).NotificationLogRepository().Create(ctx, entry); err != nil {
		s.logger.Error("NOTIFICATION", "Failed to record notification log", map[string]interface{}{
			"type":  typeCode,
			"error": err.Error(),
		})
	}
	s.metrics.Notification(typeCode, result)
	return nil
}

// ListLogs returns the newest dispatch records, optionally narrowed to one
// status.
func (s *NotificationService) ListLogs(ctx context.Context, status string, limit int) ([]*dto.NotificationLogResponse, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	if limit > MaxLogLimit {
		limit = MaxLogLimit
	}

	specs := []specification.Specification{}
	if strings.TrimSpace(status) != "" {
		st, ok := entity.ParseNotificationStatus(status)
		if !ok {
			return nil, apperror.Validation("invalid status %q", status)
		}
		specs = append(specs, specification.Filter("status", string(st)))
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)

	logs, err := s.uowFactory.NewUnitOfWork(ctx).NotificationLogRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NotificationLogResponse, 0, len(logs))
	for _, l := range logs {
		result = append(result, &dto.NotificationLogResponse{
			Id:         l.Id,
			EventType:  l.EventType,
			Recipients: l.Recipients,
			Subject:    l.Subject,
			Status:     string(l.Status),
			Error:      l.Error,
			Payload:    l.Payload,
			CreatedAt:  l.CreatedAt,
		})
	}
	return result, nil
}
