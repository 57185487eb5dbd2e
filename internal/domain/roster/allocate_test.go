package roster

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

func makeRecords(prefix string, team signup.Team, count int, startDate int64, paid bool) []signup.Record {
	out := make([]signup.Record, 0, count)
	for i := range count {
		out = append(out, signup.Record{
			ID:   fmt.Sprintf("%s-%d", prefix, i),
			Name: fmt.Sprintf("%s player %d", prefix, i),
			Date: signup.FormatMillis(startDate + int64(i)),
			Team: team,
			Paid: paid,
		})
	}
	return out
}

func TestAllocate_EvictsLatestUnpaid(t *testing.T) {
	t.Parallel()

	white := makeRecords("w", signup.TeamWhite, 8, 100, true)
	white = append(white, signup.Record{ID: "late", Name: "Late Unpaid", Date: "999", Team: signup.TeamWhite})
	dark := makeRecords("d", signup.TeamDark, 8, 200, true)

	got := Allocate(append(white, dark...))
	if len(got.White) != 8 {
		t.Fatalf("expected 8 white players, got %d", len(got.White))
	}
	if len(got.Dark) != 8 {
		t.Fatalf("expected 8 dark players, got %d", len(got.Dark))
	}
	if len(got.Waitlist) != 1 || got.Waitlist[0].ID != "late" {
		t.Fatalf("expected late unpaid player waitlisted, got %+v", got.Waitlist)
	}
}

func TestAllocate_NoOverflowPassthrough(t *testing.T) {
	t.Parallel()

	records := []signup.Record{
		{ID: "3", Name: "C", Date: "30", Team: signup.TeamWhite},
		{ID: "1", Name: "A", Date: "10", Team: signup.TeamWhite},
		{ID: "2", Name: "B", Date: "20", Team: signup.TeamDark},
		{ID: "4", Name: "D", Date: "40", Team: "red"},
	}

	got := Allocate(records)
	if len(got.Waitlist) != 0 {
		t.Fatalf("expected empty waitlist, got %d", len(got.Waitlist))
	}
	if len(got.White) != 2 || got.White[0].ID != "1" || got.White[1].ID != "3" {
		t.Fatalf("expected white ordered by date, got %+v", got.White)
	}
	if len(got.Dark) != 1 || got.Dark[0].ID != "2" {
		t.Fatalf("unexpected dark: %+v", got.Dark)
	}
}

func TestAllocate_PaidPlayersNeverEvicted(t *testing.T) {
	t.Parallel()

	records := append(
		makeRecords("w", signup.TeamWhite, 10, 100, true),
		makeRecords("d", signup.TeamDark, 9, 200, true)...,
	)
	records = append(records, signup.Record{ID: "u", Name: "Unpaid", Date: "1", Team: signup.TeamDark})

	got := Allocate(records)
	if len(got.Waitlist) != 1 || got.Waitlist[0].ID != "u" {
		t.Fatalf("expected only the unpaid record waitlisted, got %+v", got.Waitlist)
	}
	if len(got.White) != 10 || len(got.Dark) != 9 {
		t.Fatalf("expected paid players kept, got white=%d dark=%d", len(got.White), len(got.Dark))
	}
}

func TestAllocate_WaitlistSortedAscending(t *testing.T) {
	t.Parallel()

	records := makeRecords("w", signup.TeamWhite, 10, 100, false)
	records = append(records, makeRecords("d", signup.TeamDark, 10, 50, false)...)

	got := Allocate(records)
	if len(got.Waitlist) != 4 {
		t.Fatalf("expected 4 waitlisted, got %d", len(got.Waitlist))
	}
	for i := 1; i < len(got.Waitlist); i++ {
		if got.Waitlist[i-1].DateMillis() > got.Waitlist[i].DateMillis() {
			t.Fatalf("waitlist not ascending: %+v", got.Waitlist)
		}
	}
	// the four most recent sign-ups are white 6..9
	if got.Waitlist[0].ID != "w-6" || got.Waitlist[3].ID != "w-9" {
		t.Fatalf("unexpected waitlist members: %+v", got.Waitlist)
	}
}

func TestAllocate_CapacityProperty(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(7)
	teams := []signup.Team{signup.TeamWhite, signup.TeamDark, "", "blue"}

	for round := range 300 {
		count := faker.IntRange(0, 40)
		records := make([]signup.Record, 0, count)
		valid := 0
		for i := range count {
			team := teams[faker.IntRange(0, len(teams)-1)]
			if team.Valid() {
				valid++
			}
			records = append(records, signup.Record{
				ID:   fmt.Sprintf("%d-%d", round, i),
				Name: faker.Name(),
				Date: signup.FormatMillis(int64(faker.IntRange(1, 1000))),
				Team: team,
				Paid: faker.Bool(),
			})
		}

		got := Allocate(records)
		if total := len(got.White) + len(got.Dark) + len(got.Waitlist); total != valid {
			t.Fatalf("round %d: conservation broken: %d != %d", round, total, valid)
		}
		if len(got.White)+len(got.Dark) > Capacity {
			for _, record := range append(append([]signup.Record{}, got.White...), got.Dark...) {
				if !record.Paid {
					t.Fatalf("round %d: unpaid player kept while over capacity", round)
				}
			}
		}
		if valid >= Capacity && len(got.White)+len(got.Dark) < Capacity {
			t.Fatalf("round %d: evicted more than needed", round)
		}
		for _, record := range got.Waitlist {
			if record.Paid {
				t.Fatalf("round %d: paid player evicted", round)
			}
		}
	}
}

func TestAllocateWithOverrides_ManualWaitlist(t *testing.T) {
	t.Parallel()

	records := []signup.Record{
		{ID: "1", Name: "A", Date: "10", Team: signup.TeamWhite, Paid: true},
		{ID: "2", Name: "B", Date: "5", Team: signup.TeamDark, Paid: true, ManualWaitlist: true},
		{ID: "3", Name: "C", Date: "20", Team: signup.TeamDark},
	}

	got := AllocateWithOverrides(records)
	if len(got.Waitlist) != 1 || got.Waitlist[0].ID != "2" {
		t.Fatalf("expected manual record on waitlist, got %+v", got.Waitlist)
	}
	if len(got.Dark) != 1 || got.Dark[0].ID != "3" {
		t.Fatalf("unexpected dark: %+v", got.Dark)
	}
}

func TestAllocation_Smaller(t *testing.T) {
	t.Parallel()

	even := Allocation{White: make([]signup.Record, 2), Dark: make([]signup.Record, 2)}
	if even.Smaller() != signup.TeamWhite {
		t.Fatalf("expected tie to go to white")
	}
	darkShort := Allocation{White: make([]signup.Record, 3), Dark: make([]signup.Record, 2)}
	if darkShort.Smaller() != signup.TeamDark {
		t.Fatalf("expected dark to be smaller")
	}
}

func TestSplitByTeam_IgnoresCapacity(t *testing.T) {
	t.Parallel()

	records := append(makeRecords("w", signup.TeamWhite, 12, 100, false), makeRecords("d", signup.TeamDark, 9, 200, true)...)
	records = append(records, signup.Record{ID: "x", Name: "No Team"})

	white, dark := SplitByTeam(records)
	if len(white) != 12 || len(dark) != 9 {
		t.Fatalf("unexpected split white=%d dark=%d", len(white), len(dark))
	}
	if white[0].ID != "w-0" || dark[8].ID != "d-8" {
		t.Fatalf("expected input order preserved")
	}
}
