package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

func TestEventNotifier_SendAccountVerification(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	notifier := NewEventNotifier(publisher)

	if err := notifier.SendAccountVerification(context.Background(), 42, "ana@example.com"); err != nil {
		t.Fatalf("SendAccountVerification failed: %v", err)
	}

	events := publisher.GetPublishedEvents()
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Type != EventVerificationRequested {
		t.Errorf("Got event type %q", events[0].Type)
	}
	if events[0].UserID != 42 || events[0].Email != "ana@example.com" {
		t.Errorf("Payload mismatch: %+v", events[0])
	}
}

func TestEventNotifier_NotifyStatusChanged(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	notifier := NewEventNotifier(publisher)

	if err := notifier.NotifyStatusChanged(context.Background(), 42, false); err != nil {
		t.Fatalf("NotifyStatusChanged failed: %v", err)
	}

	events := publisher.GetPublishedEvents()
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Type != EventStatusChanged {
		t.Errorf("Got event type %q", events[0].Type)
	}
	if events[0].UserID != 42 {
		t.Errorf("Payload mismatch: %+v", events[0])
	}
	if events[0].Active == nil || *events[0].Active {
		t.Errorf("Active flag not carried: %+v", events[0])
	}
}

func TestEventNotifier_NotifyDeleted(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	notifier := NewEventNotifier(publisher)

	if err := notifier.NotifyDeleted(context.Background(), 42, "ana@example.com"); err != nil {
		t.Fatalf("NotifyDeleted failed: %v", err)
	}

	events := publisher.GetPublishedEvents()
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Type != EventDeleted {
		t.Errorf("Got event type %q", events[0].Type)
	}
	if events[0].UserID != 42 || events[0].Email != "ana@example.com" {
		t.Errorf("Payload mismatch: %+v", events[0])
	}
}

func TestEventNotifier_PublishFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	publisher.FailNext = errors.New("broker unavailable")
	notifier := NewEventNotifier(publisher)

	if err := notifier.SendAccountVerification(context.Background(), 42, "ana@example.com"); err == nil {
		t.Fatal("Expected publish failure to surface")
	}
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Error("Failed publish must not record an event")
	}
}

func TestGoChannelPublisher_RoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	publisher := &watermillPublisher{
		publisher: pubsub,
		topic:     "student.notifications",
		logger:    logger,
	}
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	messages, err := pubsub.Subscribe(ctx, "student.notifications")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	event := &StudentEvent{Type: EventStatusChanged, UserID: 7}
	if err := publisher.Publish(ctx, event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case msg := <-messages:
		var got StudentEvent
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("Invalid payload: %v", err)
		}
		if got.Type != EventStatusChanged || got.UserID != 7 {
			t.Errorf("Payload mismatch: %+v", got)
		}
		if got.OccurredAt.IsZero() {
			t.Error("OccurredAt must be stamped on publish")
		}
		if msg.Metadata.Get("event_type") != EventStatusChanged {
			t.Errorf("Metadata event_type %q", msg.Metadata.Get("event_type"))
		}
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("Timed out waiting for event")
	}
}
