package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/quietdesk/phoneroom-booking-backend/internal/pkg/timerange"
	"github.com/quietdesk/phoneroom-booking-backend/internal/room"
)

type CreateRequest struct {
	UserID    string
	RoomID    string
	StartTime time.Time
	EndTime   time.Time
	Note      *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Cancel(ctx context.Context, requesterID, bookingID string) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	CheckAvailability(ctx context.Context, roomID string, start, end time.Time) (bool, error)
	FreeSlots(ctx context.Context, roomID string, from, to time.Time) ([]TimeSlot, error)
}

type service struct {
	repo        Repository
	checker     Checker
	roomService room.Service
	events      EventPublisher // may be nil
}

func NewService(repo Repository, checker Checker, roomService room.Service, events EventPublisher) Service {
	return &service{
		repo:        repo,
		checker:     checker,
		roomService: roomService,
		events:      events,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate the time window.
	candidate, err := timerange.New(req.StartTime.UTC(), req.EndTime.UTC())
	if err != nil {
		return nil, ErrInvalidTimeRange
	}

	// 2. Validate the room exists.
	if _, err := s.roomService.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	// 3. Admissibility check.
	available, err := s.checker.IsAvailable(ctx, req.RoomID, candidate, "")
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrSlotUnavailable
	}

	// 4. Commit. A concurrent insert may have slipped in after step 3;
	// the store re-checks atomically and reports ErrConflict, which maps
	// to the same outcome the caller would have seen from step 3.
	b := &Booking{
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		StartTime: candidate.Start,
		EndTime:   candidate.End,
		Note:      req.Note,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	s.publish(ctx, EventBookingCreated, CreatedEvent{
		BookingID: b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		CreatedAt: b.CreatedAt,
	})

	return b, nil
}

func (s *service) Cancel(ctx context.Context, requesterID, bookingID string) error {
	if err := s.repo.Delete(ctx, bookingID, requesterID); err != nil {
		return err
	}

	s.publish(ctx, EventBookingCancelled, CancelledEvent{
		BookingID:   bookingID,
		RequesterID: requesterID,
		CancelledAt: time.Now().UTC(),
	})
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) CheckAvailability(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	candidate, err := timerange.New(start.UTC(), end.UTC())
	if err != nil {
		return false, ErrInvalidTimeRange
	}

	if _, err := s.roomService.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return false, ErrRoomNotFound
		}
		return false, err
	}

	return s.checker.IsAvailable(ctx, roomID, candidate, "")
}

func (s *service) FreeSlots(ctx context.Context, roomID string, from, to time.Time) ([]TimeSlot, error) {
	window, err := timerange.New(from.UTC(), to.UTC())
	if err != nil {
		return nil, ErrInvalidTimeRange
	}

	if _, err := s.roomService.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	bookings, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return FreeSlots(window, bookings), nil
}

func (s *service) publish(ctx context.Context, key string, event any) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishJSON(ctx, key, event); err != nil {
		log.Printf("publish %s event failed: %v", key, err)
	}
}
