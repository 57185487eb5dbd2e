package roster

import (
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

// MockSignups is the placeholder roster served when the store is unreachable.
func MockSignups(now time.Time) []signup.Record {
	current := now.UnixMilli()
	oneDayAgo := current - int64(24*time.Hour/time.Millisecond)
	twoDaysAgo := current - int64(48*time.Hour/time.Millisecond)

	mock := func(id int64, name string, date int64, team signup.Team, paid bool) signup.Record {
		return signup.Record{
			ID:    signup.FormatMillis(id),
			Name:  name,
			Money: signup.GameFee,
			Date:  signup.FormatMillis(date),
			Team:  team,
			Paid:  paid,
		}
	}

	return []signup.Record{
		mock(current, "Alberto Monta", current, signup.TeamWhite, true),
		mock(oneDayAgo, "Gavin Jay", oneDayAgo, signup.TeamWhite, false),
		mock(twoDaysAgo, "Andrea Ciccardi", twoDaysAgo, signup.TeamDark, true),
		mock(oneDayAgo-1000, "Gabe", oneDayAgo, signup.TeamDark, true),
		mock(current-1000, "Marco Rossi", current, signup.TeamWhite, false),
		mock(twoDaysAgo-1000, "Luca Bianchi", twoDaysAgo, signup.TeamDark, true),
	}
}
