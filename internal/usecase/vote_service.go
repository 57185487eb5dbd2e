package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/vote"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
)

type SubmitVoteInput struct {
	GameID     string
	PlayerName string
	Team       string
	Rating     int
	VoterID    string
}

// GameRatings is the per-game rating summary plus the caller's own ratings
// keyed by player name.
type GameRatings struct {
	Ratings   []vote.Summary
	MyRatings map[string]int
}

type MigrateInput struct {
	FromGameID string
	ToGameID   string
}

type VoteService struct {
	voteRepo vote.Repository
	excluded map[string]struct{}
	logger   *logging.Logger
	now      func() time.Time
}

// NewVoteService builds the service. Votes of excludedGameIDs are left out of
// the cross-game leaderboard only.
func NewVoteService(voteRepo vote.Repository, excludedGameIDs []string, logger *logging.Logger) *VoteService {
	if logger == nil {
		logger = logging.Default()
	}

	return &VoteService{
		voteRepo: voteRepo,
		excluded: vote.ExcludedSet(excludedGameIDs),
		logger:   logger.Named("vote"),
		now:      time.Now,
	}
}

func (s *VoteService) Submit(ctx context.Context, input SubmitVoteInput) (vote.Vote, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.Submit")
	defer span.End()

	team := strings.TrimSpace(input.Team)
	if team == "" {
		team = vote.UnknownTeam
	}
	v := vote.Vote{
		GameID:     strings.TrimSpace(input.GameID),
		PlayerName: input.PlayerName,
		Team:       team,
		Rating:     input.Rating,
		VoterID:    strings.TrimSpace(input.VoterID),
		UpdatedAt:  isoTimestamp(s.now()),
	}
	if err := v.Validate(); err != nil {
		return vote.Vote{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	v.ID = vote.ID(v.GameID, v.PlayerName, v.VoterID)

	if err := s.voteRepo.Upsert(ctx, v); err != nil {
		return vote.Vote{}, fmt.Errorf("%w: save vote: %v", ErrDependencyUnavailable, err)
	}
	return v, nil
}

// Remove deletes the caller's rating of a player. Removing a missing vote succeeds.
func (s *VoteService) Remove(ctx context.Context, gameID, playerName, voterID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.Remove")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	voterID = strings.TrimSpace(voterID)
	if gameID == "" || strings.TrimSpace(playerName) == "" {
		return fmt.Errorf("%w: game id and player name are required", ErrInvalidInput)
	}
	if voterID == "" {
		return fmt.Errorf("%w: voter id is required", ErrInvalidInput)
	}

	if err := s.voteRepo.Delete(ctx, vote.ID(gameID, playerName, voterID)); err != nil {
		return fmt.Errorf("%w: delete vote: %v", ErrDependencyUnavailable, err)
	}
	return nil
}

// Ratings summarizes every valid vote of one game.
func (s *VoteService) Ratings(ctx context.Context, gameID, voterID string) (GameRatings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.Ratings")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return GameRatings{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	votes, err := s.voteRepo.ListByGame(ctx, gameID)
	if err != nil {
		return GameRatings{}, fmt.Errorf("%w: list votes: %v", ErrDependencyUnavailable, err)
	}

	out := GameRatings{
		Ratings:   vote.Aggregate(votes, nil),
		MyRatings: map[string]int{},
	}
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return out, nil
	}
	for _, v := range votes {
		if v.VoterID == voterID {
			out.MyRatings[v.PlayerName] = v.Rating
		}
	}
	return out, nil
}

// MyRatings returns the caller's ratings for one game keyed by player name.
func (s *VoteService) MyRatings(ctx context.Context, gameID, voterID string) (map[string]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.MyRatings")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	out := map[string]int{}
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return out, nil
	}

	votes, err := s.voteRepo.ListByGameAndVoter(ctx, gameID, voterID)
	if err != nil {
		return nil, fmt.Errorf("%w: list votes: %v", ErrDependencyUnavailable, err)
	}
	for _, v := range votes {
		out[v.PlayerName] = v.Rating
	}
	return out, nil
}

// Leaderboard ranks players for one game, or across every game when gameID
// is empty. Excluded games only apply to the cross-game board.
func (s *VoteService) Leaderboard(ctx context.Context, gameID string) (vote.Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.Leaderboard")
	defer span.End()

	var (
		votes    []vote.Vote
		excluded map[string]struct{}
		err      error
	)
	gameID = strings.TrimSpace(gameID)
	if gameID != "" {
		votes, err = s.voteRepo.ListByGame(ctx, gameID)
	} else {
		votes, err = s.voteRepo.List(ctx)
		excluded = s.excluded
	}
	if err != nil {
		return vote.Leaderboard{}, fmt.Errorf("%w: list votes: %v", ErrDependencyUnavailable, err)
	}

	return vote.BuildLeaderboard(vote.Aggregate(votes, excluded)), nil
}

// Migrate re-keys every vote of one game id onto another in a single atomic
// write. It returns the number of moved votes.
func (s *VoteService) Migrate(ctx context.Context, input MigrateInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.Migrate")
	defer span.End()

	from, to, err := normalizeMigrateInput(input)
	if err != nil {
		return 0, err
	}

	votes, err := s.voteRepo.ListByGame(ctx, from)
	if err != nil {
		return 0, fmt.Errorf("%w: list votes: %v", ErrDependencyUnavailable, err)
	}
	if len(votes) == 0 {
		return 0, nil
	}

	stamp := isoTimestamp(s.now())
	removed := make([]string, 0, len(votes))
	added := make([]vote.Vote, 0, len(votes))
	for _, v := range votes {
		removed = append(removed, v.ID)
		v.GameID = to
		v.ID = vote.ID(to, v.PlayerName, v.VoterID)
		v.UpdatedAt = stamp
		added = append(added, v)
	}

	if err := s.voteRepo.Replace(ctx, removed, added); err != nil {
		return 0, fmt.Errorf("%w: migrate votes: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "votes migrated", "from", from, "to", to, "count", len(added))
	return len(added), nil
}

func normalizeMigrateInput(input MigrateInput) (string, string, error) {
	from := strings.TrimSpace(input.FromGameID)
	to := strings.TrimSpace(input.ToGameID)
	if from == "" || to == "" {
		return "", "", fmt.Errorf("%w: from and to game ids are required", ErrInvalidInput)
	}
	if from == to {
		return "", "", fmt.Errorf("%w: from and to game ids must differ", ErrInvalidInput)
	}
	return from, to, nil
}
