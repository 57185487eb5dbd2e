package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/game"
	"github.com/riskibarqy/soccernow/internal/domain/roster"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
)

// RecentGamesLimit is the number of games returned by the history list.
const RecentGamesLimit = 20

type CreateGameInput struct {
	GameDate    string
	WhiteRoster []game.RosterEntry
	DarkRoster  []game.RosterEntry
}

type UpdateScoreInput struct {
	GameDate string
	White    int
	Dark     int
}

type GameService struct {
	gameRepo game.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewGameService(gameRepo game.Repository, logger *logging.Logger) *GameService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GameService{
		gameRepo: gameRepo,
		logger:   logger.Named("game"),
		now:      time.Now,
	}
}

func (s *GameService) ListRecent(ctx context.Context) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ListRecent")
	defer span.End()

	games, err := s.gameRepo.ListRecent(ctx, RecentGamesLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: list games: %v", ErrDependencyUnavailable, err)
	}
	return games, nil
}

func (s *GameService) Get(ctx context.Context, gameDate string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Get")
	defer span.End()

	gameDate = strings.TrimSpace(gameDate)
	if gameDate == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	g, exists, err := s.gameRepo.GetByID(ctx, gameDate)
	if err != nil {
		return game.Game{}, fmt.Errorf("%w: get game: %v", ErrDependencyUnavailable, err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game %s", ErrNotFound, gameDate)
	}
	return g, nil
}

// Create stores a manually entered game. Totals and odds are computed from
// the supplied rosters.
func (s *GameService) Create(ctx context.Context, input CreateGameInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Create")
	defer span.End()

	gameDate := strings.TrimSpace(input.GameDate)
	if gameDate == "" {
		return game.Game{}, fmt.Errorf("%w: game date is required", ErrInvalidInput)
	}
	if _, err := time.Parse(roster.DateIDLayout, gameDate); err != nil {
		return game.Game{}, fmt.Errorf("%w: game date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if input.WhiteRoster == nil || input.DarkRoster == nil {
		return game.Game{}, fmt.Errorf("%w: white and dark rosters are required", ErrInvalidInput)
	}

	whiteRoster := game.NormalizeRoster(input.WhiteRoster)
	darkRoster := game.NormalizeRoster(input.DarkRoster)
	for _, entry := range append(append([]game.RosterEntry{}, whiteRoster...), darkRoster...) {
		if entry.Name == "" {
			return game.Game{}, fmt.Errorf("%w: roster entries need a name", ErrInvalidInput)
		}
	}

	white, dark := game.Snapshot(whiteRoster, darkRoster)
	created := game.Game{
		GameDate:     gameDate,
		WhiteTeam:    white,
		DarkTeam:     dark,
		TotalPlayers: len(whiteRoster) + len(darkRoster),
		CreatedAt:    isoTimestamp(s.now()),
	}

	if err := s.gameRepo.Create(ctx, created); err != nil {
		if errors.Is(err, game.ErrAlreadyExists) {
			return game.Game{}, fmt.Errorf("%w: game %s already exists", ErrConflict, gameDate)
		}
		return game.Game{}, fmt.Errorf("%w: create game: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "game created", "game_date", gameDate, "total_players", created.TotalPlayers)
	return created, nil
}

func (s *GameService) UpdateScore(ctx context.Context, input UpdateScoreInput) (game.FinalScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.UpdateScore")
	defer span.End()

	gameDate := strings.TrimSpace(input.GameDate)
	if gameDate == "" {
		return game.FinalScore{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	if input.White < 0 || input.Dark < 0 {
		return game.FinalScore{}, fmt.Errorf("%w: scores must be >= 0", ErrInvalidInput)
	}

	score := game.FinalScore{
		White:     input.White,
		Dark:      input.Dark,
		UpdatedAt: isoTimestamp(s.now()),
	}
	if err := s.gameRepo.UpdateScore(ctx, gameDate, score); err != nil {
		if errors.Is(err, game.ErrNotFound) {
			return game.FinalScore{}, fmt.Errorf("%w: game %s", ErrNotFound, gameDate)
		}
		return game.FinalScore{}, fmt.Errorf("%w: update score: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "game score updated", "game_date", gameDate, "white", score.White, "dark", score.Dark)
	return score, nil
}
