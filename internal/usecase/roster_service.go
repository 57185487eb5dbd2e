package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/game"
	"github.com/riskibarqy/soccernow/internal/domain/player"
	"github.com/riskibarqy/soccernow/internal/domain/roster"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

type RosterConfig struct {
	Location           *time.Location
	AutoArchiveEnabled bool
}

// RosterView is the enforced roster of the current cycle plus the
// payment-ordered diagnostic queue.
type RosterView struct {
	Window     roster.Window
	Merged     []signup.Record
	Allocation roster.Allocation
	Queue      roster.TheoreticalQueue
	MockData   bool
	Debug      *RosterDebug
}

type RosterDebug struct {
	Now                  time.Time
	TotalFromStore       int
	AfterDateFilter      int
	FinalPlayerCount     int
	PaidQueueCount       int
	WhiteCount           int
	DarkCount            int
	WaitlistCount        int
	TheoreticalCount     int
	LatePayersCount      int
	AllFilteredNames     []string
	AutoArchiveTriggered bool
}

// OddsView is the live rating balance between the two teams.
type OddsView struct {
	ThursdayID string
	White      game.TeamSnapshot
	Dark       game.TeamSnapshot
}

type RosterService struct {
	signupRepo signup.Repository
	playerRepo player.Repository
	archiver   *ArchiveService
	cfg        RosterConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(
	signupRepo signup.Repository,
	playerRepo player.Repository,
	archiver *ArchiveService,
	cfg RosterConfig,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	cfg.Location = loadLocation(cfg.Location)

	return &RosterService{
		signupRepo: signupRepo,
		playerRepo: playerRepo,
		archiver:   archiver,
		cfg:        cfg,
		logger:     logger.Named("roster"),
		now:        time.Now,
	}
}

// View builds the roster of the current cycle. A failed store read falls back
// to placeholder sign-ups. With debug set the cycle filter is skipped and
// pipeline counters are attached.
func (s *RosterService) View(ctx context.Context, debug bool) (RosterView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.View")
	defer span.End()

	now := s.now()
	window := roster.ComputeWindow(now, s.cfg.Location)

	out := RosterView{Window: window}
	records, err := s.signupRepo.ListByMoney(ctx, signup.GameFee)
	if err != nil {
		s.logger.WarnContext(ctx, "signup store unavailable, serving mock roster", "error", err)
		records = roster.MockSignups(now)
		out.MockData = true
	}

	var archived bool
	if !out.MockData && s.cfg.AutoArchiveEnabled && s.archiver != nil {
		archived = s.archiver.AutoArchivePrevious(ctx, records)
	}

	filtered := records
	if !debug {
		filtered = window.Filter(records)
	}

	out.Merged = roster.MergeByPlayer(filtered)
	out.Allocation = roster.AllocateWithOverrides(out.Merged)
	out.Queue = roster.BuildTheoreticalQueue(out.Merged)

	if debug {
		names := make([]string, 0, len(filtered))
		for _, record := range filtered {
			names = append(names, record.Name)
		}
		out.Debug = &RosterDebug{
			Now:                  now.In(s.cfg.Location),
			TotalFromStore:       len(records),
			AfterDateFilter:      len(filtered),
			FinalPlayerCount:     len(out.Merged),
			PaidQueueCount:       len(out.Queue.Waitlist) + len(out.Queue.LatePayers),
			WhiteCount:           len(out.Allocation.White),
			DarkCount:            len(out.Allocation.Dark),
			WaitlistCount:        len(out.Allocation.Waitlist),
			TheoreticalCount:     len(out.Queue.Waitlist),
			LatePayersCount:      len(out.Queue.LatePayers),
			AllFilteredNames:     names,
			AutoArchiveTriggered: archived,
		}
	}

	s.logger.DebugContext(ctx, "roster computed",
		"thursday", window.ThursdayID,
		"merged", len(out.Merged),
		"white", len(out.Allocation.White),
		"dark", len(out.Allocation.Dark),
		"waitlist", len(out.Allocation.Waitlist),
	)

	return out, nil
}

// Odds rates the live white and dark rosters of the current cycle.
func (s *RosterService) Odds(ctx context.Context) (OddsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Odds")
	defer span.End()

	var (
		players []player.Player
		records []signup.Record
	)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.List(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "player store unavailable, using default ratings", "error", err)
			return nil
		}
		players = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.signupRepo.ListByMoney(ctx, signup.GameFee)
		if err != nil {
			return fmt.Errorf("list signups: %w", err)
		}
		records = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return OddsView{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	window := roster.ComputeWindow(s.now(), s.cfg.Location)
	allocation := roster.AllocateWithOverrides(roster.MergeByPlayer(window.Filter(records)))
	dir := player.NewDirectory(players)

	white, dark := game.Snapshot(
		game.BuildRoster(allocation.White, dir),
		game.BuildRoster(allocation.Dark, dir),
	)
	return OddsView{ThursdayID: window.ThursdayID, White: white, Dark: dark}, nil
}
