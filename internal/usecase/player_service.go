package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/soccernow/internal/domain/player"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
)

const (
	defaultPlayerSyncWorkers  = 4
	defaultPlayerSyncLookback = 30 * 24 * time.Hour
)

type PlayerConfig struct {
	SyncWorkers  int
	SyncLookback time.Duration
}

type PlayerSyncResult struct {
	NewPlayersFound int
	PlayersCreated  int
	FailedCount     int
	WorkerCount     int
	Players         []player.Player
}

type PlayerService struct {
	playerRepo player.Repository
	signupRepo signup.Repository
	cfg        PlayerConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewPlayerService(
	playerRepo player.Repository,
	signupRepo signup.Repository,
	cfg PlayerConfig,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SyncWorkers <= 0 {
		cfg.SyncWorkers = defaultPlayerSyncWorkers
	}
	if cfg.SyncLookback <= 0 {
		cfg.SyncLookback = defaultPlayerSyncLookback
	}

	return &PlayerService{
		playerRepo: playerRepo,
		signupRepo: signupRepo,
		cfg:        cfg,
		logger:     logger.Named("player"),
		now:        time.Now,
	}
}

// List returns the directory. When the store cannot be read the built-in
// default players are returned and fallback is true.
func (s *PlayerService) List(ctx context.Context) (players []player.Player, fallback bool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "player store unavailable, serving default players", "error", err)
		return player.DefaultPlayers(), true, nil
	}
	return items, false, nil
}

// ReplaceAll swaps the whole directory for the given players.
func (s *PlayerService) ReplaceAll(ctx context.Context, players []player.Player) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ReplaceAll")
	defer span.End()

	stamp := isoTimestamp(s.now())
	seen := make(map[string]struct{}, len(players))
	out := make([]player.Player, 0, len(players))
	for i, p := range players {
		p = player.WithDefaults(p)
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: player %d: %v", ErrInvalidInput, i, err)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrInvalidInput, p.Name)
		}
		seen[p.Name] = struct{}{}
		p.UpdatedAt = stamp
		out = append(out, p)
	}

	if err := s.playerRepo.ReplaceAll(ctx, out); err != nil {
		return nil, fmt.Errorf("%w: replace players: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "player directory replaced", "count", len(out))
	return out, nil
}

// AutoPopulate creates a directory entry for name from its sign-up history.
// An existing entry is returned unchanged with created false.
func (s *PlayerService) AutoPopulate(ctx context.Context, name, venmoName string) (p player.Player, created bool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.AutoPopulate")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return player.Player{}, false, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	existing, exists, err := s.playerRepo.GetByName(ctx, name)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("%w: get player: %v", ErrDependencyUnavailable, err)
	}
	if exists {
		return existing, false, nil
	}

	records, err := s.signupRepo.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "signup history unavailable, populating without it", "name", name, "error", err)
		records = nil
	}

	p, err = s.populate(ctx, name, venmoName, historyFor(records, name))
	if err != nil {
		return player.Player{}, false, err
	}
	return p, true, nil
}

// SyncNew creates directory entries for every name that signed up within the
// lookback period but has no entry yet.
func (s *PlayerService) SyncNew(ctx context.Context) (PlayerSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.SyncNew")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return PlayerSyncResult{}, fmt.Errorf("%w: list players: %v", ErrDependencyUnavailable, err)
	}
	records, err := s.signupRepo.List(ctx)
	if err != nil {
		return PlayerSyncResult{}, fmt.Errorf("%w: list signups: %v", ErrDependencyUnavailable, err)
	}

	known := make(map[string]struct{}, len(players))
	for _, p := range players {
		known[p.Name] = struct{}{}
	}

	cutoff := s.now().Add(-s.cfg.SyncLookback).UnixMilli()
	var names []string
	recent := make(map[string][]signup.Record)
	for _, record := range records {
		if record.Name == "" || record.DateMillis() <= cutoff {
			continue
		}
		if _, ok := known[record.Name]; ok {
			continue
		}
		if _, ok := recent[record.Name]; !ok {
			names = append(names, record.Name)
		}
		recent[record.Name] = append(recent[record.Name], record)
	}

	workerCount := min(s.cfg.SyncWorkers, max(len(names), 1))
	result := PlayerSyncResult{NewPlayersFound: len(names), WorkerCount: workerCount}
	if len(names) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return PlayerSyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	created := make(chan player.Player, len(names))
	var failedCount atomic.Int32
	var workers sync.WaitGroup
	for _, name := range names {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			history := recent[name]
			venmo := name
			for _, record := range history {
				if record.VenmoName != "" {
					venmo = record.VenmoName
					break
				}
			}

			p, err := s.populate(ctx, name, venmo, historyFor(records, name))
			if err != nil {
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "player sync failed", "name", name, "error", err)
				return
			}
			created <- p
		}); err != nil {
			workers.Done()
			return PlayerSyncResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(created)

	for p := range created {
		result.Players = append(result.Players, p)
	}
	sort.SliceStable(result.Players, func(i, j int) bool {
		return result.Players[i].Name < result.Players[j].Name
	})
	result.PlayersCreated = len(result.Players)
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "player sync finished",
		"new_players_found", result.NewPlayersFound,
		"players_created", result.PlayersCreated,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *PlayerService) populate(ctx context.Context, name, venmoName string, history []signup.Record) (player.Player, error) {
	now := s.now()
	p := player.AutoPopulate(name, venmoName, history, now)
	p.UpdatedAt = isoTimestamp(now)

	if err := s.playerRepo.Upsert(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("%w: save player: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "player auto populated",
		"name", p.Name,
		"team", p.Team,
		"position", p.Position,
		"history", len(history),
	)
	return p, nil
}

func historyFor(records []signup.Record, name string) []signup.Record {
	var out []signup.Record
	for _, record := range records {
		if record.Name == name {
			out = append(out, record)
		}
	}
	return out
}
