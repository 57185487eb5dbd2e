package memory

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/soccernow/internal/domain/game"
	"github.com/riskibarqy/soccernow/internal/domain/player"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
	"github.com/riskibarqy/soccernow/internal/domain/vote"
)

func TestSignupRepository_UpsertKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	repo := NewSignupRepository([]signup.Record{
		{ID: "1", Name: "Alice", Money: 7},
		{ID: "2", Name: "Bob", Money: 5},
	})
	ctx := t.Context()

	if err := repo.Upsert(ctx, signup.Record{ID: "1", Name: "Alice", Money: 7, Paid: true}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.UpsertBatch(ctx, []signup.Record{{ID: "3", Name: "Cara", Money: 7}}); err != nil {
		t.Fatalf("upsert batch: %v", err)
	}

	got, err := repo.ListByMoney(ctx, signup.GameFee)
	if err != nil {
		t.Fatalf("list by money: %v", err)
	}
	want := []signup.Record{
		{ID: "1", Name: "Alice", Money: 7, Paid: true},
		{ID: "3", Name: "Cara", Money: 7},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	if err := repo.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.GetByID(ctx, "1"); ok {
		t.Fatalf("expected record to be deleted")
	}
	all, _ := repo.List(ctx)
	if len(all) != 2 || all[0].ID != "2" || all[1].ID != "3" {
		t.Fatalf("unexpected records after delete: %+v", all)
	}
}

func TestGameRepository_CreateIsIdempotentPerDate(t *testing.T) {
	t.Parallel()

	repo := NewGameRepository(nil)
	ctx := t.Context()
	g := game.Game{
		GameDate:  "2024-01-11",
		WhiteTeam: game.TeamSnapshot{Roster: []game.RosterEntry{{Name: "Alice", Rating: 7}}},
	}

	if err := repo.Create(ctx, g); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := repo.Create(ctx, g); !errors.Is(err, game.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	if err := repo.UpdateScore(ctx, "2024-01-18", game.FinalScore{White: 1}); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateScore(ctx, "2024-01-11", game.FinalScore{White: 3, Dark: 2, UpdatedAt: "1"}); err != nil {
		t.Fatalf("update score: %v", err)
	}

	stored, ok, err := repo.GetByID(ctx, "2024-01-11")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if stored.Winner() != game.WinnerWhite {
		t.Fatalf("unexpected winner %q", stored.Winner())
	}

	// callers must not be able to mutate stored state
	stored.WhiteTeam.Roster[0].Name = "Mallory"
	again, _, _ := repo.GetByID(ctx, "2024-01-11")
	if again.WhiteTeam.Roster[0].Name != "Alice" {
		t.Fatalf("stored roster was mutated through a returned copy")
	}
}

func TestGameRepository_ListRecent(t *testing.T) {
	t.Parallel()

	repo := NewGameRepository([]game.Game{
		{GameDate: "2024-01-04"},
		{GameDate: "2024-01-18"},
		{GameDate: "2024-01-11"},
	})

	got, err := repo.ListRecent(t.Context(), 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(got) != 2 || got[0].GameDate != "2024-01-18" || got[1].GameDate != "2024-01-11" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestVoteRepository_Replace(t *testing.T) {
	t.Parallel()

	old := vote.Vote{ID: "g1_Alice_v1", GameID: "g1", PlayerName: "Alice", VoterID: "v1", Rating: 8}
	repo := NewVoteRepository([]vote.Vote{old})
	ctx := t.Context()

	moved := old
	moved.ID = "g2_Alice_v1"
	moved.GameID = "g2"
	if err := repo.Replace(ctx, []string{old.ID}, []vote.Vote{moved}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if got, _ := repo.ListByGame(ctx, "g1"); len(got) != 0 {
		t.Fatalf("expected old game to be empty, got %+v", got)
	}
	got, _ := repo.ListByGameAndVoter(ctx, "g2", "v1")
	if len(got) != 1 || got[0].ID != moved.ID {
		t.Fatalf("unexpected votes: %+v", got)
	}
}

func TestPlayerRepository_ReplaceAll(t *testing.T) {
	t.Parallel()

	repo := NewPlayerRepository(player.DefaultPlayers())
	ctx := t.Context()

	if err := repo.ReplaceAll(ctx, []player.Player{{Name: "Zed", Rating: 6}}); err != nil {
		t.Fatalf("replace all: %v", err)
	}
	got, _ := repo.List(ctx)
	if len(got) != 1 || got[0].Name != "Zed" {
		t.Fatalf("unexpected players: %+v", got)
	}
}
