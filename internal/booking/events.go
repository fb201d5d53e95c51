package booking

import (
	"context"
	"time"
)

// Routing keys for booking lifecycle events.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// EventPublisher emits booking lifecycle events. Publishing is best-effort:
// failures are logged, never surfaced to the booking caller. A nil
// publisher disables emission.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// CreatedEvent is published after a booking commits.
type CreatedEvent struct {
	BookingID string    `json:"booking_id"`
	UserID    string    `json:"user_id"`
	RoomID    string    `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// CancelledEvent is published after a booking is cancelled.
type CancelledEvent struct {
	BookingID   string    `json:"booking_id"`
	RequesterID string    `json:"requester_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}
