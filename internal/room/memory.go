package room

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository is a map-backed Repository used by tests and local runs
// without a database. Name uniqueness is enforced the same way the SQL
// schema does.
type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*Room
	byName map[string]string // name -> id
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:   make(map[string]*Room),
		byName: make(map[string]string),
	}
}

func (r *memoryRepository) Create(ctx context.Context, room *Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[room.Name]; taken {
		return ErrNameTaken
	}

	room.ID = uuid.NewString()
	room.CreatedAt = time.Now().UTC()

	stored := *room
	r.byID[room.ID] = &stored
	r.byName[room.Name] = room.ID
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *room
	return &out, nil
}

func (r *memoryRepository) List(ctx context.Context) ([]*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*Room, 0, len(r.byID))
	for _, room := range r.byID {
		out := *room
		rooms = append(rooms, &out)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
	return rooms, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byName, room.Name)
	delete(r.byID, id)
	return nil
}
