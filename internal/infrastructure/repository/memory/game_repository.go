package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/riskibarqy/soccernow/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	games map[string]game.Game
}

func NewGameRepository(seed []game.Game) *GameRepository {
	games := make(map[string]game.Game, len(seed))
	for _, g := range seed {
		games[g.GameDate] = cloneGame(g)
	}
	return &GameRepository{games: games}
}

func (r *GameRepository) GetByID(_ context.Context, gameDate string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[gameDate]
	if !ok {
		return game.Game{}, false, nil
	}
	return cloneGame(g), true, nil
}

func (r *GameRepository) List(_ context.Context) ([]game.Game, error) {
	return r.sorted(0), nil
}

func (r *GameRepository) ListRecent(_ context.Context, limit int) ([]game.Game, error) {
	return r.sorted(limit), nil
}

func (r *GameRepository) Create(_ context.Context, g game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[g.GameDate]; exists {
		return game.ErrAlreadyExists
	}
	r.games[g.GameDate] = cloneGame(g)
	return nil
}

func (r *GameRepository) UpdateScore(_ context.Context, gameDate string, score game.FinalScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[gameDate]
	if !ok {
		return game.ErrNotFound
	}
	g.FinalScore = &score
	r.games[gameDate] = g
	return nil
}

func (r *GameRepository) sorted(limit int) []game.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, cloneGame(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameDate > out[j].GameDate })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func cloneGame(g game.Game) game.Game {
	g.WhiteTeam.Roster = slices.Clone(g.WhiteTeam.Roster)
	g.DarkTeam.Roster = slices.Clone(g.DarkTeam.Roster)
	if g.FinalScore != nil {
		score := *g.FinalScore
		g.FinalScore = &score
	}
	return g
}
