package booking

import (
	"context"

	"github.com/quietdesk/phoneroom-booking-backend/internal/pkg/timerange"
)

// Checker decides whether a candidate interval can be booked for a room.
// excludeBookingID skips one existing booking from consideration, for
// re-validating a cancel-and-recreate flow.
//
// The contract is deliberately implementation-free: the linear scan below
// can be swapped for an interval-indexed structure without touching callers.
type Checker interface {
	IsAvailable(ctx context.Context, roomID string, candidate timerange.Range, excludeBookingID string) (bool, error)
}

type scanChecker struct {
	repo Repository
}

// NewChecker returns a Checker that scans the room's bookings in order.
// Linear is fine at one-room cardinality.
func NewChecker(repo Repository) Checker {
	return &scanChecker{repo: repo}
}

func (c *scanChecker) IsAvailable(ctx context.Context, roomID string, candidate timerange.Range, excludeBookingID string) (bool, error) {
	existing, err := c.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return false, err
	}

	for _, b := range existing {
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		if candidate.Overlaps(b.Range()) {
			return false, nil
		}
	}
	return true, nil
}
