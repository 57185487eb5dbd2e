package game

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/riskibarqy/soccernow/internal/domain/player"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

func TestWinProbability_Complement(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(99)
	for range 1000 {
		w := float64(faker.IntRange(0, 200)) / 2
		d := float64(faker.IntRange(0, 200)) / 2
		white, dark := WinProbability(w, d)
		if math.Abs(white+dark-100) > 0.05 {
			t.Fatalf("w=%v d=%v: %v + %v != 100", w, d, white, dark)
		}
	}
}

func TestWinProbability_ZeroTotals(t *testing.T) {
	t.Parallel()

	white, dark := WinProbability(0, 0)
	if white != 50 || dark != 50 {
		t.Fatalf("expected 50/50, got %v/%v", white, dark)
	}
}

func TestWinProbability_Rounding(t *testing.T) {
	t.Parallel()

	white, dark := WinProbability(56, 51)
	if white != 52.3 || dark != 47.7 {
		t.Fatalf("got %v/%v want 52.3/47.7", white, dark)
	}
}

func TestBuildRoster_DirectoryDefaults(t *testing.T) {
	t.Parallel()

	dir := player.NewDirectory([]player.Player{{Name: "Gabe", Rating: 8.8, Position: player.PositionGoalkeeper}})
	roster := BuildRoster([]signup.Record{
		{Name: " GABE", Goalkeeper: true},
		{Name: "Stranger"},
	}, dir)

	if roster[0].Rating != 8.8 || roster[0].Position != player.PositionGoalkeeper || !roster[0].Goalkeeper {
		t.Fatalf("unexpected known entry: %+v", roster[0])
	}
	if roster[0].Name != " GABE" {
		t.Fatalf("expected raw sign-up name kept, got %q", roster[0].Name)
	}
	if roster[1].Rating != player.DefaultRating || roster[1].Position != player.DefaultPosition {
		t.Fatalf("unexpected default entry: %+v", roster[1])
	}
}

func TestSnapshot_TotalsAndAverages(t *testing.T) {
	t.Parallel()

	white, dark := Snapshot(
		[]RosterEntry{{Name: "a", Rating: 8}, {Name: "b", Rating: 7.5}},
		nil,
	)
	if white.TotalRating != 15.5 || white.AvgRating != 7.8 {
		t.Fatalf("unexpected white snapshot: %+v", white)
	}
	if dark.TotalRating != 0 || dark.AvgRating != 0 || dark.Roster == nil {
		t.Fatalf("unexpected dark snapshot: %+v", dark)
	}
	if white.WinProbability != 100 || dark.WinProbability != 0 {
		t.Fatalf("unexpected odds: %v/%v", white.WinProbability, dark.WinProbability)
	}
}

func TestGame_Winner(t *testing.T) {
	t.Parallel()

	if (Game{}).Winner() != "" {
		t.Fatalf("expected no winner without a score")
	}
	if (Game{FinalScore: &FinalScore{White: 3, Dark: 1}}).Winner() != WinnerWhite {
		t.Fatalf("expected white")
	}
	if (Game{FinalScore: &FinalScore{White: 0, Dark: 2}}).Winner() != WinnerDark {
		t.Fatalf("expected dark")
	}
	if (Game{FinalScore: &FinalScore{White: 2, Dark: 2}}).Winner() != WinnerTie {
		t.Fatalf("expected tie")
	}
}
