package vote

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestID_ReplacesSlashesAndWhitespace(t *testing.T) {
	t.Parallel()

	got := ID("2024-01-11", "Marco Rossi/Jr", "abc\tdef")
	if got != "2024-01-11_Marco_Rossi_Jr_abc_def" {
		t.Fatalf("unexpected id: %s", got)
	}
}

func TestAggregate_DiscardsOutOfRange(t *testing.T) {
	t.Parallel()

	got := Aggregate([]Vote{
		{GameID: "g", PlayerName: "A", Rating: 0},
		{GameID: "g", PlayerName: "A", Rating: 11},
		{GameID: "g", PlayerName: "A", Rating: 5},
		{GameID: "g", PlayerName: "A", Rating: 6},
	}, nil)

	want := []Summary{{PlayerName: "A", TotalRating: 11, TotalVotes: 2, AvgRating: 5.5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected aggregate (-want +got):\n%s", diff)
	}
}

func TestAggregate_ExcludedGames(t *testing.T) {
	t.Parallel()

	votes := []Vote{
		{GameID: "2026-01-22", PlayerName: "A", Rating: 10},
		{GameID: "2026-01-29", PlayerName: "A", Rating: 4},
		{GameID: "2026-01-29", PlayerName: "B", Rating: 7, Team: "dark"},
	}

	got := Aggregate(votes, ExcludedSet([]string{"2026-01-22"}))
	if len(got) != 2 {
		t.Fatalf("expected 2 players, got %d", len(got))
	}
	if got[0].PlayerName != "A" || got[0].TotalVotes != 1 || got[0].AvgRating != 4 {
		t.Fatalf("unexpected A summary: %+v", got[0])
	}
	if got[1].Team != "dark" {
		t.Fatalf("expected team carried from first vote, got %q", got[1].Team)
	}

	all := Aggregate(votes, nil)
	if all[0].TotalVotes != 2 {
		t.Fatalf("expected exclusion to be opt-in, got %+v", all[0])
	}
}

func TestBuildLeaderboard(t *testing.T) {
	t.Parallel()

	summaries := make([]Summary, 0, 7)
	for i, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		summaries = append(summaries, Summary{PlayerName: name, AvgRating: float64(i + 1)})
	}

	board := BuildLeaderboard(summaries)
	if len(board.Best) != 5 || board.Best[0].PlayerName != "g" || board.Best[4].PlayerName != "c" {
		t.Fatalf("unexpected best: %+v", board.Best)
	}
	if len(board.Worst) != 5 || board.Worst[0].PlayerName != "a" || board.Worst[4].PlayerName != "e" {
		t.Fatalf("unexpected worst: %+v", board.Worst)
	}
	if len(board.All) != 7 {
		t.Fatalf("expected all players, got %d", len(board.All))
	}
	if summaries[0].PlayerName != "a" {
		t.Fatalf("input must not be reordered")
	}
}

func TestVote_Validate(t *testing.T) {
	t.Parallel()

	base := Vote{GameID: "g", PlayerName: "p", VoterID: "v", Rating: 5}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base.Rating = 11
	if err := base.Validate(); err == nil {
		t.Fatalf("expected rating error")
	}
}
