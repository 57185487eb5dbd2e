package roster

import (
	"fmt"
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

const (
	// DefaultTimezone is the civil calendar the weekly cycle is evaluated in.
	DefaultTimezone = "America/Los_Angeles"
	// DateIDLayout formats a cycle's Thursday as its game id.
	DateIDLayout = "2006-01-02"
)

// Window is one sign-up cycle: Friday 00:01 through Thursday 23:59:59.999 local time.
type Window struct {
	Start      time.Time
	End        time.Time
	ThursdayID string
}

// ComputeWindow returns the cycle containing now. On Friday through Sunday that
// is the cycle ending next Thursday; Monday through Thursday it ends this Thursday.
func ComputeWindow(now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)

	var ahead int
	switch local.Weekday() {
	case time.Friday:
		ahead = 6
	case time.Saturday:
		ahead = 5
	case time.Sunday:
		ahead = 4
	default:
		ahead = int(time.Thursday) - int(local.Weekday())
	}

	y, m, d := local.Date()
	return WindowForThursday(time.Date(y, m, d+ahead, 0, 0, 0, 0, loc), loc)
}

// WindowForThursday builds the cycle that ends on the civil date of thursday.
func WindowForThursday(thursday time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := thursday.In(loc).Date()

	start := time.Date(y, m, d-6, 0, 1, 0, 0, loc)
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)

	return Window{
		Start:      start.UTC(),
		End:        end.UTC(),
		ThursdayID: time.Date(y, m, d, 0, 0, 0, 0, loc).Format(DateIDLayout),
	}
}

// Contains reports whether the epoch-millis timestamp falls inside the window, inclusive.
func (w Window) Contains(ms int64) bool {
	return ms >= w.Start.UnixMilli() && ms <= w.End.UnixMilli()
}

// Filter keeps records whose date falls inside the window.
func (w Window) Filter(records []signup.Record) []signup.Record {
	out := make([]signup.Record, 0, len(records))
	for _, record := range records {
		if w.Contains(record.DateMillis()) {
			out = append(out, record)
		}
	}
	return out
}

// PreviousThursday returns the Thursday that just finished when now falls on
// Friday, Saturday or Sunday. Other weekdays are outside the archive window.
func PreviousThursday(now time.Time, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)

	var back int
	switch local.Weekday() {
	case time.Friday:
		back = 1
	case time.Saturday:
		back = 2
	case time.Sunday:
		back = 3
	default:
		return time.Time{}, false
	}

	y, m, d := local.Date()
	return time.Date(y, m, d-back, 0, 0, 0, 0, loc), true
}

// ParseThursdayID parses a YYYY-MM-DD game id and requires it to be a Thursday.
func ParseThursdayID(id string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation(DateIDLayout, id, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse game date %q: %w", id, err)
	}
	if day.Weekday() != time.Thursday {
		return time.Time{}, fmt.Errorf("game date %q is a %s, expected Thursday", id, day.Weekday())
	}
	return day, nil
}
