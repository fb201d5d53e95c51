package http

import (
	"time"

	"github.com/quietdesk/phoneroom-booking-backend/internal/booking"
)

// CreateBookingRequest is the payload for POST /v1/bookings.
type CreateBookingRequest struct {
	RoomID    string    `json:"room_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Note      *string   `json:"note"`
}

// BookingResponse is the shape of booking data returned in API responses.
type BookingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RoomID    string    `json:"room_id"`
	RoomName  string    `json:"room_name,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		RoomName:  b.RoomName,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Note:      b.Note,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// AvailabilityResponse is returned by GET /v1/rooms/:id/availability.
type AvailabilityResponse struct {
	RoomID    string    `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
}

// TimeSlotResponse is one free gap in GET /v1/rooms/:id/free-slots.
type TimeSlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
