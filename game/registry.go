package game

import (
	"sync"

	"go.uber.org/zap"

	"github.com/emrekoco/syncarena/syncarena-backend/models"
)

// Registry is the authoritative mapping of live connection ids to player
// state. It is the sole mutator of player state; everything else reads
// copies. The mutex covers reads from the HTTP query surface, mutations
// all come from the hub's single event loop.
type Registry struct {
	mu      sync.Mutex
	players map[string]*models.PlayerState
	log     *zap.SugaredLogger
}

func NewRegistry(log *zap.SugaredLogger) *Registry {
	return &Registry{
		players: make(map[string]*models.PlayerState),
		log:     log,
	}
}

// Add inserts a default state for id. Adding an id that is already present
// is a caller bug; the entry is reset to defaults rather than duplicated.
func (r *Registry) Add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[id]; exists {
		r.log.Warnf("Player %s already registered, resetting state", id)
	}
	r.players[id] = &models.PlayerState{}
}

// Update applies the non-nil fields of partial to an existing player.
// Returns false without creating an entry when id is unknown.
func (r *Registry) Update(id string, partial models.PlayerUpdate) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, exists := r.players[id]
	if !exists {
		r.log.Warnf("Update for unknown player %s ignored", id)
		return false
	}
	if partial.X != nil {
		player.X = *partial.X
	}
	if partial.Y != nil {
		player.Y = *partial.Y
	}
	if partial.Score != nil {
		player.Score = *partial.Score
	}
	return true
}

// SetRoom records the last room the player joined.
func (r *Registry) SetRoom(id, room string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, exists := r.players[id]
	if !exists {
		r.log.Warnf("Room change for unknown player %s ignored", id)
		return false
	}
	player.Room = room
	return true
}

// Remove deletes the entry for id, no-op if absent.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, id)
}

// Players returns a snapshot copy of the full registry. Callers may hold
// or mutate it freely without observing later registry changes.
func (r *Registry) Players() map[string]models.PlayerState {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]models.PlayerState, len(r.players))
	for id, player := range r.players {
		snapshot[id] = *player
	}
	return snapshot
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}
