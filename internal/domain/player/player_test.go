package player

import (
	"testing"
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

func TestAutoPopulate_SmartDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	history := []signup.Record{
		{Name: "Marco", Date: "100", Team: signup.TeamDark},
		{Name: "Marco", Date: "300", Team: signup.TeamDark},
		{Name: "Marco", Date: "200", Team: signup.TeamWhite},
	}

	got := AutoPopulate("Marco", "Marco R", history, now)
	if got.Team != signup.TeamDark {
		t.Fatalf("expected most common team dark, got %s", got.Team)
	}
	if got.LastPaymentDate != "300" {
		t.Fatalf("expected most recent payment date, got %s", got.LastPaymentDate)
	}
	if got.WhatsAppName != "Marco R" {
		t.Fatalf("expected venmo name as whatsapp name, got %s", got.WhatsAppName)
	}
	if got.Rating != DefaultRating || got.Position != PositionMidfielder || got.Goalkeeper {
		t.Fatalf("unexpected field player defaults: %+v", got)
	}
	if !got.AutoCreated {
		t.Fatalf("expected autoCreated=true")
	}
}

func TestAutoPopulate_GoalkeeperDetection(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name    string
		player  string
		history []signup.Record
	}{
		{name: "history", player: "Sam", history: []signup.Record{{Name: "Sam", Goalkeeper: true}}},
		{name: "name hint gk", player: "Tom GK", history: nil},
		{name: "name hint goalie", player: "Goalie Joe", history: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := AutoPopulate(tc.player, "", tc.history, now)
			if !got.Goalkeeper || got.Position != PositionGoalkeeper || got.Rating != GoalkeeperRating {
				t.Fatalf("expected goalkeeper defaults, got %+v", got)
			}
		})
	}
}

func TestAutoPopulate_TieGoesWhite(t *testing.T) {
	t.Parallel()

	got := AutoPopulate("Ana", "", []signup.Record{
		{Team: signup.TeamDark},
		{Team: signup.TeamWhite},
	}, time.Now())
	if got.Team != signup.TeamWhite {
		t.Fatalf("expected white on tie, got %s", got.Team)
	}
	if got.WhatsAppName != "Ana" || got.VenmoFullName != "Ana" {
		t.Fatalf("expected names to default to player name, got %+v", got)
	}
}

func TestDirectory_NormalizedLookupAndProfile(t *testing.T) {
	t.Parallel()

	dir := NewDirectory([]Player{
		{Name: "Gabe", Rating: 8.8, Position: PositionGoalkeeper},
		{Name: "Luca", Rating: 0},
	})

	rating, position := dir.Profile("  gabe ")
	if rating != 8.8 || position != PositionGoalkeeper {
		t.Fatalf("unexpected profile: %v %s", rating, position)
	}
	rating, position = dir.Profile("Luca")
	if rating != DefaultRating || position != DefaultPosition {
		t.Fatalf("expected defaults for zero-valued fields, got %v %s", rating, position)
	}
	rating, position = dir.Profile("Nobody")
	if rating != DefaultRating || position != DefaultPosition {
		t.Fatalf("expected defaults for unknown player, got %v %s", rating, position)
	}
	if _, ok := dir.LookupExact("gabe"); ok {
		t.Fatalf("exact lookup must be case sensitive")
	}
}

func TestPlayer_Validate(t *testing.T) {
	t.Parallel()

	if err := (Player{Name: "A", Rating: 11}).Validate(); err == nil {
		t.Fatalf("expected rating validation error")
	}
	if err := (Player{Name: "A", Position: "winger"}).Validate(); err == nil {
		t.Fatalf("expected position validation error")
	}
	if err := (Player{Name: " "}).Validate(); err == nil {
		t.Fatalf("expected name validation error")
	}
	if err := WithDefaults(Player{Name: "A"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
