package room

import (
	"net/http"
	"time"

	"github.com/quietdesk/phoneroom-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound  = apperror.New(http.StatusNotFound, "room not found")
	ErrNameTaken = apperror.New(http.StatusConflict, "room name already in use")
	ErrEmptyName = apperror.New(http.StatusBadRequest, "room name cannot be empty")
)

// Room is a bookable phone room. Capacity is informational only;
// it is not enforced against bookings.
type Room struct {
	ID          string
	Name        string
	Description string
	Capacity    int
	CreatedAt   time.Time
}
