package game

import (
	"errors"
	"math"
	"strings"

	"github.com/riskibarqy/soccernow/internal/domain/player"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

var (
	ErrAlreadyExists = errors.New("game already archived")
	ErrNotFound      = errors.New("game not found")
)

const (
	WinnerWhite = "white"
	WinnerDark  = "dark"
	WinnerTie   = "tie"
)

type RosterEntry struct {
	Name       string
	Rating     float64
	Position   player.Position
	Goalkeeper bool
}

type TeamSnapshot struct {
	Roster         []RosterEntry
	TotalRating    float64
	AvgRating      float64
	WinProbability float64
}

type FinalScore struct {
	White     int
	Dark      int
	UpdatedAt string
}

// Game is the archived snapshot of one cycle, keyed by its Thursday date.
type Game struct {
	GameDate     string
	WhiteTeam    TeamSnapshot
	DarkTeam     TeamSnapshot
	TotalPlayers int
	FinalScore   *FinalScore
	ArchivedAt   string
	CreatedAt    string
	AutoArchived bool
}

// Winner reports the side that won, or an empty string when no score is recorded.
func (g Game) Winner() string {
	if g.FinalScore == nil {
		return ""
	}
	switch {
	case g.FinalScore.White > g.FinalScore.Dark:
		return WinnerWhite
	case g.FinalScore.Dark > g.FinalScore.White:
		return WinnerDark
	default:
		return WinnerTie
	}
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// WinProbability splits 100 between two rating totals. Both zero yields 50/50.
func WinProbability(whiteTotal, darkTotal float64) (white, dark float64) {
	total := whiteTotal + darkTotal
	if total == 0 {
		return 50, 50
	}
	white = Round1(whiteTotal / total * 100)
	return white, Round1(100 - white)
}

// BuildRoster resolves each record's rating and position from the directory.
func BuildRoster(records []signup.Record, dir player.Directory) []RosterEntry {
	out := make([]RosterEntry, 0, len(records))
	for _, record := range records {
		rating, position := dir.Profile(record.Name)
		out = append(out, RosterEntry{
			Name:       record.Name,
			Rating:     rating,
			Position:   position,
			Goalkeeper: record.Goalkeeper,
		})
	}
	return out
}

// NormalizeRoster applies directory defaults to manually supplied entries.
func NormalizeRoster(entries []RosterEntry) []RosterEntry {
	out := make([]RosterEntry, 0, len(entries))
	for _, entry := range entries {
		entry.Name = strings.TrimSpace(entry.Name)
		if entry.Rating == 0 {
			entry.Rating = player.DefaultRating
		}
		if entry.Position == "" {
			entry.Position = player.DefaultPosition
		}
		out = append(out, entry)
	}
	return out
}

// Snapshot totals both rosters and assigns complementary win probabilities.
func Snapshot(white, dark []RosterEntry) (TeamSnapshot, TeamSnapshot) {
	w := teamSnapshot(white)
	d := teamSnapshot(dark)
	w.WinProbability, d.WinProbability = WinProbability(w.TotalRating, d.TotalRating)
	return w, d
}

func teamSnapshot(roster []RosterEntry) TeamSnapshot {
	out := TeamSnapshot{Roster: roster}
	if roster == nil {
		out.Roster = []RosterEntry{}
	}
	for _, entry := range roster {
		out.TotalRating += entry.Rating
	}
	if len(roster) > 0 {
		out.AvgRating = Round1(out.TotalRating / float64(len(roster)))
	}
	return out
}
