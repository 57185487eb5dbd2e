package roster

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

const (
	// Capacity is the number of players across both teams.
	Capacity = 16
	// SideCapacity is the nominal number of players per team.
	SideCapacity = Capacity / 2
)

// Allocation is the enforced roster for a cycle.
type Allocation struct {
	White    []signup.Record
	Dark     []signup.Record
	Waitlist []signup.Record
}

// Allocate splits merged records into white, dark and waitlist buckets.
// When over capacity, the most recent unpaid sign-ups are moved to the
// waitlist; paid players are never evicted.
func Allocate(merged []signup.Record) Allocation {
	sorted := slices.Clone(merged)
	sortByDateAsc(sorted)

	var white, dark []int
	for i, record := range sorted {
		switch record.Team {
		case signup.TeamWhite:
			white = append(white, i)
		case signup.TeamDark:
			dark = append(dark, i)
		}
	}

	evicted := make(map[int]struct{})
	if overCount := len(white) + len(dark) - Capacity; overCount > 0 {
		combined := make([]int, 0, len(white)+len(dark))
		combined = append(combined, white...)
		combined = append(combined, dark...)
		slices.SortStableFunc(combined, func(a, b int) int {
			return cmp.Compare(sorted[b].DateMillis(), sorted[a].DateMillis())
		})

		for _, idx := range combined {
			if len(evicted) == overCount {
				break
			}
			if !sorted[idx].Paid {
				evicted[idx] = struct{}{}
			}
		}
	}

	out := Allocation{
		White:    make([]signup.Record, 0, len(white)),
		Dark:     make([]signup.Record, 0, len(dark)),
		Waitlist: make([]signup.Record, 0, len(evicted)),
	}
	for _, idx := range white {
		if _, ok := evicted[idx]; ok {
			continue
		}
		out.White = append(out.White, sorted[idx])
	}
	for _, idx := range dark {
		if _, ok := evicted[idx]; ok {
			continue
		}
		out.Dark = append(out.Dark, sorted[idx])
	}
	for i, record := range sorted {
		if _, ok := evicted[i]; ok {
			out.Waitlist = append(out.Waitlist, record)
		}
	}

	return out
}

// AllocateWithOverrides honours manualWaitlist flags before running Allocate:
// flagged records go straight to the waitlist and do not count toward capacity.
func AllocateWithOverrides(merged []signup.Record) Allocation {
	var manual, rest []signup.Record
	for _, record := range merged {
		if record.ManualWaitlist {
			manual = append(manual, record)
			continue
		}
		rest = append(rest, record)
	}

	out := Allocate(rest)
	if len(manual) == 0 {
		return out
	}
	out.Waitlist = append(out.Waitlist, manual...)
	sortByDateAsc(out.Waitlist)
	return out
}

// Smaller returns the team with fewer players; ties go to white.
func (a Allocation) Smaller() signup.Team {
	if len(a.Dark) < len(a.White) {
		return signup.TeamDark
	}
	return signup.TeamWhite
}

// SplitByTeam partitions records by their team without capacity checks.
// Records with no team are left out of both slices.
func SplitByTeam(records []signup.Record) (white, dark []signup.Record) {
	for _, record := range records {
		switch record.Team {
		case signup.TeamWhite:
			white = append(white, record)
		case signup.TeamDark:
			dark = append(dark, record)
		}
	}
	return white, dark
}
