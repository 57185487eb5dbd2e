package roster

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

// MergeByPlayer collapses records sharing the exact same name into one
// canonical record: the most recent paid one, else the most recent overall.
// Output follows the order in which each name first appears.
func MergeByPlayer(records []signup.Record) []signup.Record {
	groups := make(map[string][]signup.Record, len(records))
	order := make([]string, 0, len(records))
	for _, record := range records {
		if _, seen := groups[record.Name]; !seen {
			order = append(order, record.Name)
		}
		groups[record.Name] = append(groups[record.Name], record)
	}

	out := make([]signup.Record, 0, len(order))
	for _, name := range order {
		group := groups[name]
		slices.SortStableFunc(group, func(a, b signup.Record) int {
			return cmp.Compare(b.DateMillis(), a.DateMillis())
		})

		chosen := group[0]
		for _, record := range group {
			if record.Paid {
				chosen = record
				break
			}
		}
		out = append(out, chosen)
	}

	return out
}

func sortByDateAsc(records []signup.Record) {
	slices.SortStableFunc(records, func(a, b signup.Record) int {
		return cmp.Compare(a.DateMillis(), b.DateMillis())
	})
}
