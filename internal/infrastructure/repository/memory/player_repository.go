package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/soccernow/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(seed []player.Player) *PlayerRepository {
	players := make(map[string]player.Player, len(seed))
	for _, p := range seed {
		players[p.Name] = p
	}
	return &PlayerRepository{players: players}
}

// List returns players sorted by name.
func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *PlayerRepository) GetByName(_ context.Context, name string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[name]
	return p, ok, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[p.Name] = p
	return nil
}

func (r *PlayerRepository) ReplaceAll(_ context.Context, players []player.Player) error {
	next := make(map[string]player.Player, len(players))
	for _, p := range players {
		next[p.Name] = p
	}

	r.mu.Lock()
	r.players = next
	r.mu.Unlock()
	return nil
}
