package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/soccernow/internal/domain/vote"
	"github.com/riskibarqy/soccernow/internal/infrastructure/repository/memory"
	votemock "github.com/riskibarqy/soccernow/internal/mocks/domain/vote"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func newVoteFixture(t *testing.T, seed []vote.Vote) (*VoteService, *memory.VoteRepository) {
	t.Helper()

	repo := memory.NewVoteRepository(seed)
	svc := NewVoteService(repo, []string{"2026-01-22"}, logging.NewNop())
	svc.now = fixedNow(time.Date(2024, time.January, 12, 8, 0, 0, 0, time.UTC))
	return svc, repo
}

func seededVote(gameID, playerName, team, voterID string, rating int) vote.Vote {
	return vote.Vote{
		ID:         vote.ID(gameID, playerName, voterID),
		GameID:     gameID,
		PlayerName: playerName,
		Team:       team,
		Rating:     rating,
		VoterID:    voterID,
	}
}

func TestVoteService_SubmitValidatesAndKeysVote(t *testing.T) {
	t.Parallel()

	svc, repo := newVoteFixture(t, nil)

	for _, rating := range []int{0, 11} {
		_, err := svc.Submit(context.Background(), SubmitVoteInput{GameID: "2024-01-11", PlayerName: "Gabe", Rating: rating, VoterID: "v1"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("rating %d: expected ErrInvalidInput, got %v", rating, err)
		}
	}

	v, err := svc.Submit(context.Background(), SubmitVoteInput{GameID: "2024-01-11", PlayerName: "Gabe Jr", Rating: 8, VoterID: "v1"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if v.ID != "2024-01-11_Gabe_Jr_v1" {
		t.Fatalf("unexpected vote id: %s", v.ID)
	}
	if v.Team != vote.UnknownTeam {
		t.Fatalf("expected unknown team default, got %s", v.Team)
	}
	if v.UpdatedAt != "2024-01-12T08:00:00.000Z" {
		t.Fatalf("unexpected updatedAt: %s", v.UpdatedAt)
	}

	// resubmitting overwrites the same document
	if _, err := svc.Submit(context.Background(), SubmitVoteInput{GameID: "2024-01-11", PlayerName: "Gabe Jr", Rating: 6, VoterID: "v1"}); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	all, _ := repo.List(context.Background())
	if len(all) != 1 || all[0].Rating != 6 {
		t.Fatalf("expected one overwritten vote, got %+v", all)
	}
}

func TestVoteService_RatingsIncludeCallerVotes(t *testing.T) {
	t.Parallel()

	svc, _ := newVoteFixture(t, []vote.Vote{
		seededVote("g1", "Alice", "white", "v1", 8),
		seededVote("g1", "Alice", "white", "v2", 6),
		seededVote("g1", "Bob", "dark", "v1", 5),
		seededVote("g2", "Bob", "dark", "v1", 10),
	})

	got, err := svc.Ratings(context.Background(), "g1", "v1")
	if err != nil {
		t.Fatalf("ratings: %v", err)
	}

	want := GameRatings{
		Ratings: []vote.Summary{
			{PlayerName: "Alice", Team: "white", TotalRating: 14, TotalVotes: 2, AvgRating: 7},
			{PlayerName: "Bob", Team: "dark", TotalRating: 5, TotalVotes: 1, AvgRating: 5},
		},
		MyRatings: map[string]int{"Alice": 8, "Bob": 5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ratings mismatch (-want +got):\n%s", diff)
	}

	mine, err := svc.MyRatings(context.Background(), "g2", "v1")
	if err != nil {
		t.Fatalf("my ratings: %v", err)
	}
	if diff := cmp.Diff(map[string]int{"Bob": 10}, mine); diff != "" {
		t.Fatalf("my ratings mismatch (-want +got):\n%s", diff)
	}

	anonymous, err := svc.MyRatings(context.Background(), "g2", "")
	if err != nil || len(anonymous) != 0 {
		t.Fatalf("expected empty ratings for anonymous caller, got %v err=%v", anonymous, err)
	}
}

func TestVoteService_LeaderboardExcludesTestGamesOnlyOverall(t *testing.T) {
	t.Parallel()

	svc, _ := newVoteFixture(t, []vote.Vote{
		seededVote("2024-01-11", "Alice", "white", "v1", 9),
		seededVote("2024-01-11", "Bob", "dark", "v1", 4),
		seededVote("2026-01-22", "Mock", "white", "v1", 10),
	})

	overall, err := svc.Leaderboard(context.Background(), "")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(overall.All) != 2 || overall.Best[0].PlayerName != "Alice" || overall.Worst[0].PlayerName != "Bob" {
		t.Fatalf("unexpected overall board: %+v", overall)
	}

	single, err := svc.Leaderboard(context.Background(), "2026-01-22")
	if err != nil {
		t.Fatalf("leaderboard for game: %v", err)
	}
	if len(single.All) != 1 || single.All[0].PlayerName != "Mock" {
		t.Fatalf("excluded games still rank on their own board, got %+v", single)
	}
}

func TestVoteService_RemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	svc, repo := newVoteFixture(t, []vote.Vote{seededVote("g1", "Alice", "white", "v1", 8)})

	for range 2 {
		if err := svc.Remove(context.Background(), "g1", "Alice", "v1"); err != nil {
			t.Fatalf("remove: %v", err)
		}
	}
	if all, _ := repo.List(context.Background()); len(all) != 0 {
		t.Fatalf("expected vote removed, got %+v", all)
	}
	if err := svc.Remove(context.Background(), "g1", "Alice", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without voter, got %v", err)
	}
}

func TestVoteService_MigrateRekeysVotes(t *testing.T) {
	t.Parallel()

	svc, repo := newVoteFixture(t, []vote.Vote{
		seededVote("2026-01-22", "Alice", "white", "v1", 8),
		seededVote("2026-01-22", "Bob", "dark", "v2", 6),
		seededVote("2024-01-11", "Cara", "dark", "v1", 7),
	})

	moved, err := svc.Migrate(context.Background(), MigrateInput{FromGameID: "2026-01-22", ToGameID: "2026-01-15"})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if moved != 2 {
		t.Fatalf("expected two moved votes, got %d", moved)
	}

	old, _ := repo.ListByGame(context.Background(), "2026-01-22")
	if len(old) != 0 {
		t.Fatalf("expected source game emptied, got %+v", old)
	}
	migrated, _ := repo.ListByGame(context.Background(), "2026-01-15")
	if len(migrated) != 2 || migrated[0].ID != "2026-01-15_Alice_v1" {
		t.Fatalf("unexpected migrated votes: %+v", migrated)
	}

	if _, err := svc.Migrate(context.Background(), MigrateInput{FromGameID: "x", ToGameID: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for identical ids, got %v", err)
	}
}

func TestVoteService_MigrateStoreFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := votemock.NewRepository(t)
	repo.
		On("ListByGame", mock.MatchedBy(isContext(ctx)), "a").
		Return([]vote.Vote{seededVote("a", "Alice", "white", "v1", 8)}, nil).
		Once()
	repo.
		On("Replace", mock.MatchedBy(isContext(ctx)), []string{"a_Alice_v1"}, mock.MatchedBy(func(added []vote.Vote) bool {
			return len(added) == 1 && added[0].ID == "b_Alice_v1" && added[0].GameID == "b"
		})).
		Return(errors.New("transaction aborted")).
		Once()

	svc := NewVoteService(repo, nil, logging.NewNop())
	if _, err := svc.Migrate(ctx, MigrateInput{FromGameID: "a", ToGameID: "b"}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
