package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/apperror"
	"rnd-intake-be/internal/pkg/logger"
	"rnd-intake-be/internal/repository/unitofwork"
	"rnd-intake-be/internal/testutil"
	"rnd-intake-be/pkg/bus"
	"rnd-intake-be/pkg/events"
	"rnd-intake-be/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu         sync.Mutex
	configured bool
	err        error
	sent       []string
}

func (m *fakeMailer) IsConfigured() bool { return m.configured }

func (m *fakeMailer) Send(to []string, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, subject)
	return nil
}

func createdEvent() events.Event {
	return events.BaseEvent{
		Type: events.RequestCreated,
		Data: map[string]interface{}{
			"id":                "9b7d",
			"title":             "Footswitch latency",
			"created_by_name":   "Kim Sales",
			"product_area":      "C_ARM",
			"importance_flag":   "MUST",
			"customer_deadline": "2026-11-01T00:00:00Z",
			"detail_url":        "http://localhost:3000/requests/9b7d",
		},
		OccurredAt: time.Now(),
	}
}

func notificationLogs(t *testing.T, factory unitofwork.RepositoryFactory) []*entity.NotificationLog {
	t.Helper()
	logs, err := factory.NewUnitOfWork(context.Background()).NotificationLogRepository().FindAll(context.Background())
	require.NoError(t, err)
	return logs
}

func TestNotificationService_HandleEvent(t *testing.T) {
	cases := []struct {
		name       string
		recipients []string
		mailer     *fakeMailer
		status     entity.NotificationStatus
		sent       int
	}{
		{"sent", []string{"rnd@example.com"}, &fakeMailer{configured: true}, entity.NotificationSent, 1},
		{"no recipients", nil, &fakeMailer{configured: true}, entity.NotificationSkipped, 0},
		{"smtp unconfigured", []string{"rnd@example.com"}, &fakeMailer{}, entity.NotificationSkipped, 0},
		{"send fails", []string{"rnd@example.com"}, &fakeMailer{configured: true, err: errors.New("dial tcp: refused")}, entity.NotificationFailed, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			factory := unitofwork.NewRepositoryFactory(testutil.NewTestDB(t))
			svc := NewNotificationService(factory, bus.NewGoChannelBus(), tc.mailer, tc.recipients, metrics.New(), logger.NewNopLogger())

			err := svc.handleEvent(context.Background(), createdEvent())
			require.NoError(t, err)

			logs := notificationLogs(t, factory)
			require.Len(t, logs, 1)
			assert.Equal(t, events.RequestCreated, logs[0].EventType)
			assert.Equal(t, tc.status, logs[0].Status)
			assert.Contains(t, logs[0].Subject, "Footswitch latency")
			assert.Len(t, tc.mailer.sent, tc.sent)
			if tc.status == entity.NotificationFailed {
				require.NotNil(t, logs[0].Error)
				assert.Contains(t, *logs[0].Error, "refused")
			}
		})
	}
}

func TestNotificationService_StartConsumesBus(t *testing.T) {
	factory := unitofwork.NewRepositoryFactory(testutil.NewTestDB(t))
	b := bus.NewGoChannelBus()
	t.Cleanup(b.Close)
	mailer := &fakeMailer{configured: true}
	svc := NewNotificationService(factory, b, mailer, []string{"rnd@example.com"}, metrics.New(), logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Start(ctx))

	require.NoError(t, b.Publish(ctx, createdEvent()))

	assert.Eventually(t, func() bool {
		logs, err := factory.NewUnitOfWork(ctx).NotificationLogRepository().FindAll(ctx)
		return err == nil && len(logs) == 1 && logs[0].Status == entity.NotificationSent
	}, 3*time.Second, 20*time.Millisecond)
}

func TestNotificationService_ListLogs(t *testing.T) {
	factory := unitofwork.NewRepositoryFactory(testutil.NewTestDB(t))
	ctx := context.Background()

	sent := NewNotificationService(factory, bus.NewGoChannelBus(), &fakeMailer{configured: true}, []string{"rnd@example.com"}, metrics.New(), logger.NewNopLogger())
	skipped := NewNotificationService(factory, bus.NewGoChannelBus(), &fakeMailer{}, []string{"rnd@example.com"}, metrics.New(), logger.NewNopLogger())
	for i := 0; i < 3; i++ {
		require.NoError(t, sent.handleEvent(ctx, createdEvent()))
	}
	require.NoError(t, skipped.handleEvent(ctx, createdEvent()))

	all, err := sent.ListLogs(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	onlySkipped, err := sent.ListLogs(ctx, "skipped", 0)
	require.NoError(t, err)
	require.Len(t, onlySkipped, 1)
	assert.Equal(t, string(entity.NotificationSkipped), onlySkipped[0].Status)
	assert.Equal(t, []string{"rnd@example.com"}, onlySkipped[0].Recipients)
	assert.Equal(t, "Footswitch latency", onlySkipped[0].Payload["title"])

	limited, err := sent.ListLogs(ctx, string(entity.NotificationSent), 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	_, err = sent.ListLogs(ctx, "BOUNCED", 0)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
