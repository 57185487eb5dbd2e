package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/game"
	"github.com/riskibarqy/soccernow/internal/domain/player"
	"github.com/riskibarqy/soccernow/internal/domain/roster"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
	"github.com/riskibarqy/soccernow/internal/platform/lock"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
)

const (
	defaultAutoArchiveMinPlayers = 4
	defaultArchiveLockTTL        = 30 * time.Second
	archiveLockPrefix            = "archive:"
)

type ArchiveConfig struct {
	Location *time.Location
	// MinPlayers is the merged player count a finished cycle needs before it is
	// archived automatically.
	MinPlayers int
	LockTTL    time.Duration
}

// ArchiveService snapshots finished cycles into immutable games.
type ArchiveService struct {
	signupRepo signup.Repository
	playerRepo player.Repository
	gameRepo   game.Repository
	locker     lock.Locker
	cfg        ArchiveConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewArchiveService(
	signupRepo signup.Repository,
	playerRepo player.Repository,
	gameRepo game.Repository,
	locker lock.Locker,
	cfg ArchiveConfig,
	logger *logging.Logger,
) *ArchiveService {
	if logger == nil {
		logger = logging.Default()
	}
	if locker == nil {
		locker = lock.NewLocal()
	}
	cfg.Location = loadLocation(cfg.Location)
	if cfg.MinPlayers <= 0 {
		cfg.MinPlayers = defaultAutoArchiveMinPlayers
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultArchiveLockTTL
	}

	return &ArchiveService{
		signupRepo: signupRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		locker:     locker,
		cfg:        cfg,
		logger:     logger.Named("archive"),
		now:        time.Now,
	}
}

// ArchiveCurrent archives the cycle containing now.
func (s *ArchiveService) ArchiveCurrent(ctx context.Context) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArchiveService.ArchiveCurrent")
	defer span.End()

	window := roster.ComputeWindow(s.now(), s.cfg.Location)
	return s.archiveWindow(ctx, window)
}

// ArchivePast archives the cycle ending on the given Thursday.
func (s *ArchiveService) ArchivePast(ctx context.Context, gameDate string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArchiveService.ArchivePast")
	defer span.End()

	gameDate = strings.TrimSpace(gameDate)
	if gameDate == "" {
		return game.Game{}, fmt.Errorf("%w: game date is required", ErrInvalidInput)
	}
	thursday, err := roster.ParseThursdayID(gameDate, s.cfg.Location)
	if err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.archiveWindow(ctx, roster.WindowForThursday(thursday, s.cfg.Location))
}

func (s *ArchiveService) archiveWindow(ctx context.Context, window roster.Window) (game.Game, error) {
	records, err := s.signupRepo.ListByMoney(ctx, signup.GameFee)
	if err != nil {
		return game.Game{}, fmt.Errorf("%w: list signups: %v", ErrDependencyUnavailable, err)
	}
	merged := roster.MergeByPlayer(window.Filter(records))
	if len(merged) == 0 {
		return game.Game{}, fmt.Errorf("%w: no players in game %s to archive", ErrInvalidInput, window.ThursdayID)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return game.Game{}, fmt.Errorf("%w: list players: %v", ErrDependencyUnavailable, err)
	}

	return s.archiveCycle(ctx, window, merged, player.NewDirectory(players), false)
}

// AutoArchivePrevious archives the Thursday that just finished when now falls
// on Friday through Sunday. It never fails the caller: every problem is logged.
// It reports whether a new game was written.
func (s *ArchiveService) AutoArchivePrevious(ctx context.Context, records []signup.Record) bool {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArchiveService.AutoArchivePrevious")
	defer span.End()

	thursday, ok := roster.PreviousThursday(s.now(), s.cfg.Location)
	if !ok {
		return false
	}
	window := roster.WindowForThursday(thursday, s.cfg.Location)

	_, exists, err := s.gameRepo.GetByID(ctx, window.ThursdayID)
	if err != nil {
		s.logger.WarnContext(ctx, "auto archive lookup failed", "game_date", window.ThursdayID, "error", err)
		return false
	}
	if exists {
		return false
	}

	merged := roster.MergeByPlayer(window.Filter(records))
	if len(merged) < s.cfg.MinPlayers {
		s.logger.DebugContext(ctx, "auto archive skipped, not enough players",
			"game_date", window.ThursdayID,
			"players", len(merged),
			"min_players", s.cfg.MinPlayers,
		)
		return false
	}

	release, acquired, err := s.locker.TryLock(ctx, archiveLockPrefix+window.ThursdayID, s.cfg.LockTTL)
	if err != nil {
		s.logger.WarnContext(ctx, "auto archive lock failed", "game_date", window.ThursdayID, "error", err)
		return false
	}
	if !acquired {
		return false
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "auto archive unlock failed", "game_date", window.ThursdayID, "error", err)
		}
	}()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "auto archive player lookup failed, using defaults", "error", err)
		players = nil
	}

	archived, err := s.archiveCycle(ctx, window, merged, player.NewDirectory(players), true)
	switch {
	case errors.Is(err, ErrConflict):
		return false
	case err != nil:
		s.logger.ErrorContext(ctx, "auto archive failed", "game_date", window.ThursdayID, "error", err)
		return false
	}

	s.logger.InfoContext(ctx, "auto archived previous game",
		"game_date", archived.GameDate,
		"total_players", archived.TotalPlayers,
	)
	return true
}

// archiveCycle builds and persists the snapshot of one cycle. Every merged
// record lands on its team's roster; waitlist eviction is a live-roster concern
// and does not apply here. A game that already exists for the Thursday yields
// ErrConflict and is left untouched.
func (s *ArchiveService) archiveCycle(
	ctx context.Context,
	window roster.Window,
	merged []signup.Record,
	dir player.Directory,
	auto bool,
) (game.Game, error) {
	_, exists, err := s.gameRepo.GetByID(ctx, window.ThursdayID)
	if err != nil {
		return game.Game{}, fmt.Errorf("%w: get game: %v", ErrDependencyUnavailable, err)
	}
	if exists {
		return game.Game{}, fmt.Errorf("%w: game %s already archived", ErrConflict, window.ThursdayID)
	}

	whiteRecords, darkRecords := roster.SplitByTeam(merged)
	white, dark := game.Snapshot(
		game.BuildRoster(whiteRecords, dir),
		game.BuildRoster(darkRecords, dir),
	)

	archived := game.Game{
		GameDate:     window.ThursdayID,
		WhiteTeam:    white,
		DarkTeam:     dark,
		TotalPlayers: len(merged),
		ArchivedAt:   isoTimestamp(s.now()),
		AutoArchived: auto,
	}

	if err := s.gameRepo.Create(ctx, archived); err != nil {
		if errors.Is(err, game.ErrAlreadyExists) {
			return game.Game{}, fmt.Errorf("%w: game %s already archived", ErrConflict, window.ThursdayID)
		}
		return game.Game{}, fmt.Errorf("%w: create game: %v", ErrDependencyUnavailable, err)
	}

	return archived, nil
}
