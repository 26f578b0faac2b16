package events

import (
	"context"
)

// EventNotifier delivers account-verification notifications by
// publishing an event for the mail worker to consume, instead of
// talking to an SMTP server inline.
type EventNotifier struct {
	publisher EventPublisher
}

func NewEventNotifier(publisher EventPublisher) *EventNotifier {
	return &EventNotifier{publisher: publisher}
}

func (n *EventNotifier) SendAccountVerification(ctx context.Context, userID int64, email string) error {
	return n.publisher.Publish(ctx, &StudentEvent{
		Type:   EventVerificationRequested,
		UserID: userID,
		Email:  email,
	})
}

func (n *EventNotifier) NotifyStatusChanged(ctx context.Context, userID int64, active bool) error {
	return n.publisher.Publish(ctx, &StudentEvent{
		Type:   EventStatusChanged,
		UserID: userID,
		Active: &active,
	})
}

func (n *EventNotifier) NotifyDeleted(ctx context.Context, userID int64, email string) error {
	return n.publisher.Publish(ctx, &StudentEvent{
		Type:   EventDeleted,
		UserID: userID,
		Email:  email,
	})
}
