package player

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

var goalkeeperNameHints = []string{"gk", "keeper", "goalie"}

// AutoPopulate derives a directory entry for a name first seen on a sign-up,
// using the player's sign-up history for team and goalkeeper defaults.
func AutoPopulate(name, venmoName string, history []signup.Record, now time.Time) Player {
	venmo := strings.TrimSpace(venmoName)
	if venmo == "" {
		venmo = name
	}

	p := Player{
		Name:          name,
		VenmoFullName: venmo,
		WhatsAppName:  name,
		Team:          signup.TeamWhite,
		Rating:        DefaultRating,
		Position:      DefaultPosition,
		AutoCreated:   true,
		CreatedAt:     now.UTC().Format(time.RFC3339Nano),
	}
	if venmo != name {
		p.WhatsAppName = venmo
	}

	if len(history) > 0 {
		sorted := slices.Clone(history)
		slices.SortStableFunc(sorted, func(a, b signup.Record) int {
			return cmp.Compare(b.DateMillis(), a.DateMillis())
		})
		p.LastPaymentDate = sorted[0].Date
		p.Team = mostCommonTeam(history)

		for _, record := range history {
			if record.Goalkeeper {
				p.Goalkeeper = true
				break
			}
		}
	}

	if p.Goalkeeper || looksLikeGoalkeeper(name) {
		p.Goalkeeper = true
		p.Position = PositionGoalkeeper
		p.Rating = GoalkeeperRating
	}

	return p
}

// mostCommonTeam counts sign-up teams, treating a missing team as white.
// Ties resolve to white.
func mostCommonTeam(history []signup.Record) signup.Team {
	var white, dark int
	for _, record := range history {
		if record.Team == signup.TeamDark {
			dark++
			continue
		}
		white++
	}
	if dark > white {
		return signup.TeamDark
	}
	return signup.TeamWhite
}

func looksLikeGoalkeeper(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range goalkeeperNameHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
