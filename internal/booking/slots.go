package booking

import (
	"sort"

	"github.com/quietdesk/phoneroom-booking-backend/internal/pkg/timerange"
)

// FreeSlots returns the gaps inside window that no booking covers.
// Bookings outside the window are ignored; bookings straddling its edges
// are clipped. The input does not need to be sorted.
func FreeSlots(window timerange.Range, bookings []*Booking) []TimeSlot {
	cursor := window.Start

	// Walk bookings in start order so the cursor only moves forward.
	ordered := make([]*Booking, len(bookings))
	copy(ordered, bookings)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	var slots []TimeSlot
	for _, b := range ordered {
		if !window.Overlaps(b.Range()) {
			continue
		}
		if b.StartTime.After(cursor) {
			slots = append(slots, TimeSlot{StartTime: cursor, EndTime: b.StartTime})
		}
		if b.EndTime.After(cursor) {
			cursor = b.EndTime
		}
	}

	if cursor.Before(window.End) {
		slots = append(slots, TimeSlot{StartTime: cursor, EndTime: window.End})
	}
	return slots
}
