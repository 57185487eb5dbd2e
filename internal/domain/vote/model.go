package vote

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"
)

const (
	MinRating   = 1
	MaxRating   = 10
	UnknownTeam = "unknown"

	// LeaderboardSize is the number of players shown in the best and worst lists.
	LeaderboardSize = 5
)

// Vote is one voter's rating of one player for one game.
type Vote struct {
	ID         string
	GameID     string
	PlayerName string
	Team       string
	Rating     int
	VoterID    string
	UpdatedAt  string
}

func (v Vote) Validate() error {
	if strings.TrimSpace(v.GameID) == "" {
		return fmt.Errorf("vote game id is required")
	}
	if strings.TrimSpace(v.PlayerName) == "" {
		return fmt.Errorf("vote player name is required")
	}
	if strings.TrimSpace(v.VoterID) == "" {
		return fmt.Errorf("vote voter id is required")
	}
	if !ValidRating(v.Rating) {
		return fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// ID builds the document key for a voter's rating of a player, replacing
// slashes and whitespace with underscores.
func ID(gameID, playerName, voterID string) string {
	raw := gameID + "_" + playerName + "_" + voterID
	return strings.Map(func(r rune) rune {
		if r == '/' || unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, raw)
}

// Summary is the folded rating of one player.
type Summary struct {
	PlayerName  string
	Team        string
	TotalRating int
	TotalVotes  int
	AvgRating   float64
}

// Aggregate folds votes per player, discarding ratings outside 1..10 and any
// vote whose game id is in excluded. Output follows first appearance.
func Aggregate(votes []Vote, excluded map[string]struct{}) []Summary {
	index := make(map[string]int, len(votes))
	out := make([]Summary, 0, len(votes))
	for _, v := range votes {
		if _, skip := excluded[v.GameID]; skip {
			continue
		}
		if !ValidRating(v.Rating) {
			continue
		}

		i, ok := index[v.PlayerName]
		if !ok {
			i = len(out)
			index[v.PlayerName] = i
			out = append(out, Summary{PlayerName: v.PlayerName, Team: v.Team})
		}
		out[i].TotalRating += v.Rating
		out[i].TotalVotes++
		out[i].AvgRating = float64(out[i].TotalRating) / float64(out[i].TotalVotes)
	}
	return out
}

type Leaderboard struct {
	Best  []Summary
	Worst []Summary
	All   []Summary
}

// BuildLeaderboard sorts summaries by average rating, highest first.
func BuildLeaderboard(summaries []Summary) Leaderboard {
	all := slices.Clone(summaries)
	slices.SortStableFunc(all, func(a, b Summary) int {
		return cmp.Compare(b.AvgRating, a.AvgRating)
	})

	worst := slices.Clone(all)
	slices.Reverse(worst)

	return Leaderboard{
		Best:  all[:min(LeaderboardSize, len(all))],
		Worst: worst[:min(LeaderboardSize, len(worst))],
		All:   all,
	}
}

// ExcludedSet builds a lookup set from game ids.
func ExcludedSet(gameIDs []string) map[string]struct{} {
	out := make(map[string]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		if id = strings.TrimSpace(id); id != "" {
			out[id] = struct{}{}
		}
	}
	return out
}
