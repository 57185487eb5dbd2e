package cache

import (
	"context"
	"slices"
	"strconv"

	"github.com/riskibarqy/soccernow/internal/domain/game"
	"github.com/riskibarqy/soccernow/internal/domain/player"
	basecache "github.com/riskibarqy/soccernow/internal/platform/cache"
)

const (
	keyPlayerList   = "player:list"
	keyPlayerByName = "player:name:"
	keyGameList     = "game:list"
	keyGameRecent   = "game:recent:"
	keyGameByID     = "game:id:"
)

// PlayerRepository caches directory reads; writes go through and invalidate.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, keyPlayerList, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, keyPlayerByName+name, func(ctx context.Context) (cachedPlayerByName, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return cachedPlayerByName{}, err
		}
		return cachedPlayerByName{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	err := r.next.Upsert(ctx, p)
	r.cache.Invalidate(ctx, keyPlayerList, keyPlayerByName+p.Name)
	return err
}

func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []player.Player) error {
	err := r.next.ReplaceAll(ctx, players)
	r.cache.Invalidate(ctx, keyPlayerList, keyPlayerByName)
	return err
}

type cachedPlayerByName struct {
	value  player.Player
	exists bool
}

// GameRepository caches archive reads. Archived games only change on
// create and score update, both of which invalidate.
type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) GetByID(ctx context.Context, gameDate string) (game.Game, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, keyGameByID+gameDate, func(ctx context.Context) (cachedGameByID, error) {
		item, exists, err := r.next.GetByID(ctx, gameDate)
		if err != nil {
			return cachedGameByID{}, err
		}
		return cachedGameByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return game.Game{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	return r.loadList(ctx, keyGameList, r.next.List)
}

func (r *GameRepository) ListRecent(ctx context.Context, limit int) ([]game.Game, error) {
	key := keyGameRecent + strconv.Itoa(limit)
	return r.loadList(ctx, key, func(ctx context.Context) ([]game.Game, error) {
		return r.next.ListRecent(ctx, limit)
	})
}

func (r *GameRepository) Create(ctx context.Context, g game.Game) error {
	err := r.next.Create(ctx, g)
	r.cache.Invalidate(ctx, keyGameList, keyGameRecent, keyGameByID+g.GameDate)
	return err
}

func (r *GameRepository) UpdateScore(ctx context.Context, gameDate string, score game.FinalScore) error {
	err := r.next.UpdateScore(ctx, gameDate, score)
	r.cache.Invalidate(ctx, keyGameList, keyGameRecent, keyGameByID+gameDate)
	return err
}

func (r *GameRepository) loadList(ctx context.Context, key string, load func(context.Context) ([]game.Game, error)) ([]game.Game, error) {
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]game.Game, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

type cachedGameByID struct {
	value  game.Game
	exists bool
}
