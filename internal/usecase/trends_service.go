package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/riskibarqy/soccernow/internal/domain/game"
	"github.com/riskibarqy/soccernow/internal/domain/vote"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const trendsTopPlayers = 10

type TeamWins struct {
	White int
	Dark  int
	Ties  int
}

type GameResult struct {
	Date   string
	Winner string
	Score  string
}

type PlayerGameRating struct {
	GameID    string
	AvgRating float64
	Votes     int
}

type PlayerTrend struct {
	Name        string
	GamesPlayed int
	AvgRating   float64
	Trend       []PlayerGameRating
}

type Trends struct {
	TeamWins        TeamWins
	GameResults     []GameResult
	PlayerTrends    []PlayerTrend
	GameDates       []string
	TotalGames      int
	GamesWithScores int
}

type TrendsService struct {
	gameRepo game.Repository
	voteRepo vote.Repository
	logger   *logging.Logger
}

func NewTrendsService(gameRepo game.Repository, voteRepo vote.Repository, logger *logging.Logger) *TrendsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TrendsService{
		gameRepo: gameRepo,
		voteRepo: voteRepo,
		logger:   logger.Named("trends"),
	}
}

func (s *TrendsService) Get(ctx context.Context) (Trends, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrendsService.Get")
	defer span.End()

	var (
		games []game.Game
		votes []vote.Vote
	)
	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		items, err := s.gameRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list games: %w", err)
		}
		games = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.voteRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list votes: %w", err)
		}
		votes = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return Trends{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	slices.SortStableFunc(games, func(a, b game.Game) int {
		return cmp.Compare(a.GameDate, b.GameDate)
	})

	out := Trends{
		GameResults:  []GameResult{},
		PlayerTrends: buildPlayerTrends(votes),
		GameDates:    make([]string, 0, len(games)),
		TotalGames:   len(games),
	}
	for _, g := range games {
		out.GameDates = append(out.GameDates, g.GameDate)

		winner := g.Winner()
		switch winner {
		case "":
			continue
		case game.WinnerWhite:
			out.TeamWins.White++
		case game.WinnerDark:
			out.TeamWins.Dark++
		default:
			out.TeamWins.Ties++
		}
		out.GameResults = append(out.GameResults, GameResult{
			Date:   g.GameDate,
			Winner: winner,
			Score:  strconv.Itoa(g.FinalScore.White) + "-" + strconv.Itoa(g.FinalScore.Dark),
		})
	}
	out.GamesWithScores = len(out.GameResults)

	return out, nil
}

// buildPlayerTrends averages each player's ratings per game and keeps the
// players rated in the most games, best average first on ties.
func buildPlayerTrends(votes []vote.Vote) []PlayerTrend {
	type tally struct {
		total int
		count int
	}
	perPlayer := make(map[string]map[string]*tally)
	for _, v := range votes {
		if v.PlayerName == "" || v.GameID == "" || v.Rating == 0 {
			continue
		}
		games, ok := perPlayer[v.PlayerName]
		if !ok {
			games = make(map[string]*tally)
			perPlayer[v.PlayerName] = games
		}
		t, ok := games[v.GameID]
		if !ok {
			t = &tally{}
			games[v.GameID] = t
		}
		t.total += v.Rating
		t.count++
	}

	out := make([]PlayerTrend, 0, len(perPlayer))
	for name, games := range perPlayer {
		trend := PlayerTrend{Name: name, GamesPlayed: len(games)}
		var sum float64
		for gameID, t := range games {
			avg := float64(t.total) / float64(t.count)
			sum += avg
			trend.Trend = append(trend.Trend, PlayerGameRating{GameID: gameID, AvgRating: avg, Votes: t.count})
		}
		slices.SortFunc(trend.Trend, func(a, b PlayerGameRating) int {
			return cmp.Compare(a.GameID, b.GameID)
		})
		trend.AvgRating = sum / float64(len(games))
		out = append(out, trend)
	}

	slices.SortFunc(out, func(a, b PlayerTrend) int {
		if c := cmp.Compare(b.GamesPlayed, a.GamesPlayed); c != 0 {
			return c
		}
		if c := cmp.Compare(b.AvgRating, a.AvgRating); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out[:min(trendsTopPlayers, len(out))]
}
