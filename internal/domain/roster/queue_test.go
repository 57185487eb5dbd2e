package roster

import (
	"fmt"
	"testing"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

func TestBuildTheoreticalQueue_StrictPaymentOrder(t *testing.T) {
	t.Parallel()

	records := make([]signup.Record, 0, 20)
	for i := range 20 {
		// reverse insertion so ordering depends on paidAt alone
		paidAt := int64(1000 + (19-i)*10)
		records = append(records, signup.Record{
			ID:             fmt.Sprintf("id-%d", i),
			Name:           fmt.Sprintf("p%d", i),
			Paid:           true,
			PaidAt:         signup.FormatMillis(paidAt),
			Team:           signup.TeamWhite,
			ManualWaitlist: i%2 == 0,
		})
	}

	got := BuildTheoreticalQueue(records)
	if len(got.Waitlist) != 4 {
		t.Fatalf("expected 4 theoretical waitlist entries, got %d", len(got.Waitlist))
	}
	for i, item := range got.Waitlist {
		if item.Order != i+1 {
			t.Fatalf("order=%d want %d", item.Order, i+1)
		}
		if i > 0 && got.Waitlist[i-1].Timestamp > item.Timestamp {
			t.Fatalf("waitlist not ascending by payment time")
		}
	}
	if got.Waitlist[0].Timestamp != 1160 || got.Waitlist[3].Timestamp != 1190 {
		t.Fatalf("unexpected waitlist timestamps: %d..%d", got.Waitlist[0].Timestamp, got.Waitlist[3].Timestamp)
	}

	if len(got.LatePayers) != 16 {
		t.Fatalf("expected 16 late payers, got %d", len(got.LatePayers))
	}
	if got.LatePayers[0].Timestamp != 1150 || got.LatePayers[0].Order != 1 {
		t.Fatalf("expected latest in-roster payer first, got %+v", got.LatePayers[0])
	}
	if got.LatePayers[15].Timestamp != 1000 {
		t.Fatalf("expected earliest payer last, got %d", got.LatePayers[15].Timestamp)
	}
}

func TestBuildTheoreticalQueue_IgnoresUnpaid(t *testing.T) {
	t.Parallel()

	got := BuildTheoreticalQueue([]signup.Record{
		{ID: "1", Name: "A", Paid: false, PaidAt: "5"},
		{ID: "2", Name: "B", Paid: true, PaidAt: "6"},
	})
	if len(got.Waitlist) != 0 {
		t.Fatalf("expected empty waitlist")
	}
	if len(got.LatePayers) != 1 || got.LatePayers[0].ID != "2" {
		t.Fatalf("unexpected late payers: %+v", got.LatePayers)
	}
}

func TestQueueTimestamp_FallbackChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record signup.Record
		want   int64
	}{
		{name: "paidAt", record: signup.Record{PaidAt: "5", CreatedAt: "4", Date: "3", ID: "2"}, want: 5},
		{name: "createdAt", record: signup.Record{CreatedAt: "4", Date: "3", ID: "2"}, want: 4},
		{name: "date", record: signup.Record{Date: "3", ID: "2"}, want: 3},
		{name: "id", record: signup.Record{ID: "2"}, want: 2},
		{name: "none", record: signup.Record{}, want: 0},
		{name: "unparseable", record: signup.Record{PaidAt: "yesterday", Date: "3"}, want: 0},
	}

	for _, tc := range tests {
		if got := QueueTimestamp(tc.record); got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}
