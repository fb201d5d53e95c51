package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository is a map-backed Repository used by tests and local runs
// without a database. The no-overlap invariant is enforced by serializing
// Create per room: the overlap re-scan and the insert happen under the
// room's lock, so two concurrent creates for the same room can never both
// commit.
type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*Booking
	byRoom map[string][]*Booking // sorted by start time

	lockMu    sync.Mutex
	roomLocks map[string]*sync.Mutex
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:      make(map[string]*Booking),
		byRoom:    make(map[string][]*Booking),
		roomLocks: make(map[string]*sync.Mutex),
	}
}

// roomLock returns the serialization lock for a room, creating it on first use.
func (r *memoryRepository) roomLock(roomID string) *sync.Mutex {
	r.lockMu.Lock()
	defer r.lockMu.Unlock()

	l, ok := r.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		r.roomLocks[roomID] = l
	}
	return l
}

func (r *memoryRepository) Create(ctx context.Context, b *Booking) error {
	l := r.roomLock(b.RoomID)
	l.Lock()
	defer l.Unlock()

	candidate := b.Range()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Defensive re-check: the caller's availability check and this insert
	// are not one atomic step, so the scan is repeated under the room lock.
	for _, existing := range r.byRoom[b.RoomID] {
		if candidate.Overlaps(existing.Range()) {
			return ErrConflict
		}
	}

	now := time.Now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now

	stored := *b
	r.byID[stored.ID] = &stored

	slots := r.byRoom[stored.RoomID]
	idx := sort.Search(len(slots), func(i int) bool {
		return slots[i].StartTime.After(stored.StartTime)
	})
	slots = append(slots, nil)
	copy(slots[idx+1:], slots[idx:])
	slots[idx] = &stored
	r.byRoom[stored.RoomID] = slots

	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *b
	return &out, nil
}

func (r *memoryRepository) ListByRoom(ctx context.Context, roomID string) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := r.byRoom[roomID]
	out := make([]*Booking, len(slots))
	for i, b := range slots {
		c := *b
		out[i] = &c
	}
	return out, nil
}

func (r *memoryRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Booking
	for _, b := range r.byID {
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			continue
		}
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		c := *b
		matched = append(matched, &c)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartTime.Before(matched[j].StartTime)
	})

	total := len(matched)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	if offset >= total {
		return nil, total, nil
	}
	end := offset + pageSize
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string, requesterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if b.UserID != requesterID {
		return ErrPermissionDenied
	}

	delete(r.byID, id)

	slots := r.byRoom[b.RoomID]
	for i, s := range slots {
		if s.ID == id {
			r.byRoom[b.RoomID] = append(slots[:i], slots[i+1:]...)
			break
		}
	}
	return nil
}
