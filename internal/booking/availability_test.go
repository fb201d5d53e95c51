package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietdesk/phoneroom-booking-backend/internal/booking"
	"github.com/quietdesk/phoneroom-booking-backend/internal/pkg/timerange"
)

func TestCheckerIsAvailable(t *testing.T) {
	ctx := context.Background()
	repo := booking.NewMemoryRepository()
	checker := booking.NewChecker(repo)

	existing := newBooking("user-1", "room-1", slot(1, 10, 0), slot(1, 11, 0))
	require.NoError(t, repo.Create(ctx, existing))

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		exclude string
		want    bool
	}{
		{name: "identical interval conflicts", start: slot(1, 10, 0), end: slot(1, 11, 0), want: false},
		{name: "overlap at tail conflicts", start: slot(1, 10, 30), end: slot(1, 11, 30), want: false},
		{name: "containing interval conflicts", start: slot(1, 9, 0), end: slot(1, 12, 0), want: false},
		{name: "contained interval conflicts", start: slot(1, 10, 15), end: slot(1, 10, 45), want: false},
		{name: "starting at existing end is free", start: slot(1, 11, 0), end: slot(1, 12, 0), want: true},
		{name: "ending at existing start is free", start: slot(1, 9, 0), end: slot(1, 10, 0), want: true},
		{name: "excluded booking is skipped", start: slot(1, 10, 0), end: slot(1, 11, 0), exclude: existing.ID, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate, err := timerange.New(tt.start, tt.end)
			require.NoError(t, err)

			got, err := checker.IsAvailable(ctx, "room-1", candidate, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown room is free", func(t *testing.T) {
		candidate, err := timerange.New(slot(1, 10, 0), slot(1, 11, 0))
		require.NoError(t, err)

		got, err := checker.IsAvailable(ctx, "room-without-bookings", candidate, "")
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestFreeSlots(t *testing.T) {
	window, err := timerange.New(slot(1, 9, 0), slot(1, 18, 0))
	require.NoError(t, err)

	tests := []struct {
		name     string
		bookings []*booking.Booking
		want     []booking.TimeSlot
	}{
		{
			name:     "no bookings, whole window free",
			bookings: nil,
			want: []booking.TimeSlot{
				{StartTime: slot(1, 9, 0), EndTime: slot(1, 18, 0)},
			},
		},
		{
			name: "one booking in the middle",
			bookings: []*booking.Booking{
				newBooking("u", "r", slot(1, 12, 0), slot(1, 13, 0)),
			},
			want: []booking.TimeSlot{
				{StartTime: slot(1, 9, 0), EndTime: slot(1, 12, 0)},
				{StartTime: slot(1, 13, 0), EndTime: slot(1, 18, 0)},
			},
		},
		{
			name: "unsorted bookings",
			bookings: []*booking.Booking{
				newBooking("u", "r", slot(1, 14, 0), slot(1, 16, 0)),
				newBooking("u", "r", slot(1, 10, 0), slot(1, 12, 0)),
			},
			want: []booking.TimeSlot{
				{StartTime: slot(1, 9, 0), EndTime: slot(1, 10, 0)},
				{StartTime: slot(1, 12, 0), EndTime: slot(1, 14, 0)},
				{StartTime: slot(1, 16, 0), EndTime: slot(1, 18, 0)},
			},
		},
		{
			name: "booking covering the whole window",
			bookings: []*booking.Booking{
				newBooking("u", "r", slot(1, 9, 0), slot(1, 18, 0)),
			},
			want: nil,
		},
		{
			name: "booking straddling the window edge is clipped",
			bookings: []*booking.Booking{
				newBooking("u", "r", slot(1, 8, 0), slot(1, 10, 0)),
			},
			want: []booking.TimeSlot{
				{StartTime: slot(1, 10, 0), EndTime: slot(1, 18, 0)},
			},
		},
		{
			name: "booking outside the window is ignored",
			bookings: []*booking.Booking{
				newBooking("u", "r", slot(1, 19, 0), slot(1, 20, 0)),
			},
			want: []booking.TimeSlot{
				{StartTime: slot(1, 9, 0), EndTime: slot(1, 18, 0)},
			},
		},
		{
			name: "back-to-back bookings leave no gap between them",
			bookings: []*booking.Booking{
				newBooking("u", "r", slot(1, 10, 0), slot(1, 11, 0)),
				newBooking("u", "r", slot(1, 11, 0), slot(1, 12, 0)),
			},
			want: []booking.TimeSlot{
				{StartTime: slot(1, 9, 0), EndTime: slot(1, 10, 0)},
				{StartTime: slot(1, 12, 0), EndTime: slot(1, 18, 0)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := booking.FreeSlots(window, tt.bookings)
			assert.Equal(t, tt.want, got)
		})
	}
}
