package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

func pacific(t *testing.T) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func fixedNow(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func paidSignup(name string, at time.Time, team signup.Team, paid bool) signup.Record {
	ms := signup.FormatMillis(at.UnixMilli())
	return signup.Record{
		ID:    ms,
		Name:  name,
		Money: signup.GameFee,
		Date:  ms,
		Paid:  paid,
		Team:  team,
	}
}

func isContext(ctx context.Context) func(context.Context) bool {
	return func(v context.Context) bool { return v == ctx }
}

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequenceIDs) NewID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.n++
	return fmt.Sprintf("id-%03d", s.n), nil
}
