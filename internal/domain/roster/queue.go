package roster

import (
	"cmp"
	"slices"
	"strings"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

// QueuedRecord is a paid record annotated with its position in the payment queue.
type QueuedRecord struct {
	signup.Record
	Order     int
	Timestamp int64
}

// TheoreticalQueue ranks paid records strictly by payment time. It is a
// diagnostic view and never changes the enforced Allocation.
type TheoreticalQueue struct {
	Waitlist   []QueuedRecord
	LatePayers []QueuedRecord
}

// QueueTimestamp is the first non-empty of paidAt, createdAt, date and id,
// parsed as an integer.
func QueueTimestamp(record signup.Record) int64 {
	for _, candidate := range []string{record.PaidAt, record.CreatedAt, record.Date, record.ID} {
		if strings.TrimSpace(candidate) != "" {
			return signup.LeadingInt(candidate)
		}
	}
	return 0
}

// BuildTheoreticalQueue orders paid records by payment time, ignoring
// eviction, to show who would be waitlisted on payment order alone.
func BuildTheoreticalQueue(merged []signup.Record) TheoreticalQueue {
	paid := make([]QueuedRecord, 0, len(merged))
	for _, record := range merged {
		if !record.Paid {
			continue
		}
		paid = append(paid, QueuedRecord{Record: record, Timestamp: QueueTimestamp(record)})
	}
	slices.SortStableFunc(paid, func(a, b QueuedRecord) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})

	out := TheoreticalQueue{}
	queued := make(map[string]struct{})
	if len(paid) > Capacity {
		out.Waitlist = make([]QueuedRecord, 0, len(paid)-Capacity)
		for i, item := range paid[Capacity:] {
			item.Order = i + 1
			out.Waitlist = append(out.Waitlist, item)
			queued[queueKey(item.Record)] = struct{}{}
		}
	}

	late := make([]QueuedRecord, 0, len(paid))
	for _, item := range paid {
		if _, ok := queued[queueKey(item.Record)]; ok {
			continue
		}
		late = append(late, item)
	}
	slices.SortStableFunc(late, func(a, b QueuedRecord) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	for i := range late {
		late[i].Order = i + 1
	}
	out.LatePayers = late

	return out
}

func queueKey(record signup.Record) string {
	if record.ID != "" {
		return record.ID
	}
	return record.Name
}
