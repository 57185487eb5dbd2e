package signup

import (
	"fmt"
	"strconv"
	"strings"
)

// Team is the side a signed-up player is assigned to.
type Team string

const (
	TeamWhite Team = "white"
	TeamDark  Team = "dark"
)

// GameFee is the amount that marks a record as an active game sign-up.
const GameFee = 7.0

func (t Team) Valid() bool {
	return t == TeamWhite || t == TeamDark
}

// ParseTeam normalizes raw input into a Team.
func ParseTeam(raw string) (Team, bool) {
	team := Team(strings.ToLower(strings.TrimSpace(raw)))
	if !team.Valid() {
		return "", false
	}
	return team, true
}

// Record is one payment/sign-up attempt within a cycle.
// Timestamps are epoch milliseconds encoded as decimal strings.
type Record struct {
	ID             string
	Name           string
	Money          float64
	Date           string
	Paid           bool
	Team           Team
	Goalkeeper     bool
	TeamOverridden bool
	ManualWaitlist bool
	VenmoName      string
	CreatedAt      string
	PaidAt         string
	LastEditedAt   string
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("signup id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("signup name is required")
	}
	if r.Money < 0 {
		return fmt.Errorf("signup money must be >= 0")
	}
	if r.Team != "" && !r.Team.Valid() {
		return fmt.Errorf("invalid signup team: %s", r.Team)
	}

	return nil
}

// DateMillis returns the sign-up date as epoch milliseconds, or 0 when unparseable.
func (r Record) DateMillis() int64 {
	return LeadingInt(r.Date)
}

// LeadingInt parses the leading decimal digits of raw. It mirrors lenient
// integer parsing of stored timestamps: "1700000000000abc" yields the number,
// anything without leading digits yields 0.
func LeadingInt(raw string) int64 {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0
	}

	end := 0
	if value[0] == '-' || value[0] == '+' {
		end = 1
	}
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}

	out, err := strconv.ParseInt(value[:end], 10, 64)
	if err != nil {
		return 0
	}
	return out
}

// FormatMillis renders epoch milliseconds the way records store them.
func FormatMillis(ms int64) string {
	return strconv.FormatInt(ms, 10)
}
