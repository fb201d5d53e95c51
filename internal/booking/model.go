package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/quietdesk/phoneroom-booking-backend/internal/pkg/apperror"
	"github.com/quietdesk/phoneroom-booking-backend/internal/pkg/timerange"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotUnavailable  = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrRoomNotFound     = apperror.New(http.StatusNotFound, "room not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// ErrConflict is the store-level signal that an overlapping booking slipped
// in between the availability check and the insert. The service translates
// it to ErrSlotUnavailable; it never reaches callers directly.
var ErrConflict = errors.New("overlapping booking exists")

// Booking is a reservation of one room for a half-open time window
// [StartTime, EndTime). Bookings are never edited in place; rescheduling
// is modeled as cancel + recreate.
type Booking struct {
	ID        string
	UserID    string
	RoomID    string
	RoomName  string
	StartTime time.Time
	EndTime   time.Time
	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the booking's occupied interval.
func (b *Booking) Range() timerange.Range {
	return timerange.Range{Start: b.StartTime, End: b.EndTime}
}

// TimeSlot is an unoccupied gap reported by the free-slot listing.
type TimeSlot struct {
	StartTime time.Time
	EndTime   time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	RoomID   string
	UserID   string
	Page     int
	PageSize int
}
