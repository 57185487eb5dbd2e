package usecase

import "time"

const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// isoTimestamp renders t in UTC with millisecond precision, the format stored
// on games, votes and comments.
func isoTimestamp(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func loadLocation(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
