package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"rnd-intake-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topic carries every event; subscribers filter on the subject metadata.
const Topic = "rnd.events"

const (
	metaSubject    = "subject"
	metaOccurredAt = "occurred_at"
)

// GoChannelBus is the in-process event bus. It satisfies both
// events.Publisher and events.Subscriber.
type GoChannelBus struct {
	pubSub *gochannel.GoChannel
}

func NewGoChannelBus() *GoChannelBus {
	return &GoChannelBus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NewStdLogger(false, false),
		),
	}
}

func (b *GoChannelBus) Publish(_ context.Context, event events.Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(metaSubject, events.Subject(event.EventType()))
	msg.Metadata.Set(metaOccurredAt, event.Timestamp().UTC().Format(time.RFC3339Nano))

	return b.pubSub.Publish(Topic, msg)
}

// Subscribe starts a goroutine feeding matching events to handler until ctx
// is done. durableName is accepted for parity with the NATS subscriber.
func (b *GoChannelBus) Subscribe(ctx context.Context, subject, durableName string, handler events.Handler) error {
	messages, err := b.pubSub.Subscribe(ctx, Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			b.dispatch(ctx, subject, msg, handler)
		}
	}()

	log.Printf("Subscribed to %s with durable %s (in-process)", subject, durableName)
	return nil
}

func (b *GoChannelBus) dispatch(ctx context.Context, pattern string, msg *message.Message, handler events.Handler) {
	subject := msg.Metadata.Get(metaSubject)
	if !events.MatchSubject(pattern, subject) {
		msg.Ack()
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal event %s: %v", subject, err)
		msg.Ack()
		return
	}

	occurredAt, err := time.Parse(time.RFC3339Nano, msg.Metadata.Get(metaOccurredAt))
	if err != nil {
		occurredAt = time.Now().UTC()
	}

	event := events.BaseEvent{
		Type:       events.TypeFromSubject(subject),
		Data:       payload,
		OccurredAt: occurredAt,
	}
	if err := handler(ctx, event); err != nil {
		log.Printf("[ERROR] Handler failed for event %s: %v", subject, err)
	}
	msg.Ack()
}

func (b *GoChannelBus) Close() {
	_ = b.pubSub.Close()
}
