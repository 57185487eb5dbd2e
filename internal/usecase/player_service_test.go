package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/riskibarqy/soccernow/internal/domain/player"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
	"github.com/riskibarqy/soccernow/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/soccernow/internal/mocks/domain/player"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestPlayerService_ListFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	repo.
		On("List", mock.Anything).
		Return(nil, errors.New("store offline")).
		Once()

	svc := NewPlayerService(repo, memory.NewSignupRepository(nil), PlayerConfig{}, logging.NewNop())
	players, fallback, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !fallback {
		t.Fatalf("expected fallback flag")
	}
	if len(players) != len(player.DefaultPlayers()) {
		t.Fatalf("expected default players, got %d", len(players))
	}
}

func TestPlayerService_ReplaceAll(t *testing.T) {
	t.Parallel()

	repo := memory.NewPlayerRepository([]player.Player{{Name: "Old"}})
	svc := NewPlayerService(repo, memory.NewSignupRepository(nil), PlayerConfig{}, logging.NewNop())
	svc.now = fixedNow(time.Date(2024, time.January, 12, 8, 0, 0, 0, time.UTC))

	saved, err := svc.ReplaceAll(context.Background(), []player.Player{
		{Name: " Alice ", Rating: 9},
		{Name: "Bob", Team: signup.TeamDark, Position: player.PositionDefender},
	})
	if err != nil {
		t.Fatalf("replace all: %v", err)
	}
	if saved[0].Name != "Alice" || saved[0].Team != signup.TeamWhite || saved[0].Position != player.DefaultPosition {
		t.Fatalf("expected defaults applied, got %+v", saved[0])
	}

	stored, _ := repo.List(context.Background())
	if len(stored) != 2 {
		t.Fatalf("expected old entries replaced, got %+v", stored)
	}
	if _, found, _ := repo.GetByName(context.Background(), "Old"); found {
		t.Fatalf("expected Old removed")
	}

	_, err = svc.ReplaceAll(context.Background(), []player.Player{{Name: "A"}, {Name: "A "}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicates, got %v", err)
	}
	_, err = svc.ReplaceAll(context.Background(), []player.Player{{Name: "A", Rating: 11}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for rating, got %v", err)
	}
}

func TestPlayerService_AutoPopulateKeepsExisting(t *testing.T) {
	t.Parallel()

	existing := player.Player{Name: "Gabe", Rating: 8.8, Position: player.PositionGoalkeeper}
	repo := memory.NewPlayerRepository([]player.Player{existing})
	svc := NewPlayerService(repo, memory.NewSignupRepository(nil), PlayerConfig{}, logging.NewNop())

	got, created, err := svc.AutoPopulate(context.Background(), "Gabe", "")
	if err != nil {
		t.Fatalf("auto populate: %v", err)
	}
	if created || got.Rating != 8.8 {
		t.Fatalf("expected existing entry returned untouched, got %+v created=%t", got, created)
	}
}

func TestPlayerService_AutoPopulateUsesHistory(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 12, 8, 0, 0, 0, time.UTC)
	history := []signup.Record{
		paidSignup("Keeper Kim", now.Add(-72*time.Hour), signup.TeamDark, true),
		paidSignup("Keeper Kim", now.Add(-48*time.Hour), signup.TeamDark, true),
		paidSignup("Someone Else", now.Add(-24*time.Hour), signup.TeamWhite, true),
	}
	repo := memory.NewPlayerRepository(nil)
	svc := NewPlayerService(repo, memory.NewSignupRepository(history), PlayerConfig{}, logging.NewNop())
	svc.now = fixedNow(now)

	got, created, err := svc.AutoPopulate(context.Background(), "Keeper Kim", "Kim Venmo")
	if err != nil {
		t.Fatalf("auto populate: %v", err)
	}
	if !created {
		t.Fatalf("expected a new entry")
	}
	if got.Team != signup.TeamDark {
		t.Fatalf("expected most common team dark, got %s", got.Team)
	}
	if got.Position != player.PositionGoalkeeper || got.Rating != player.GoalkeeperRating {
		t.Fatalf("expected goalkeeper defaults from the name, got %+v", got)
	}
	if got.LastPaymentDate != history[1].Date {
		t.Fatalf("unexpected last payment date: %s", got.LastPaymentDate)
	}
	if got.VenmoFullName != "Kim Venmo" {
		t.Fatalf("unexpected venmo name: %s", got.VenmoFullName)
	}
}

func TestPlayerService_SyncNew(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(42)
	now := time.Date(2024, time.January, 12, 8, 0, 0, 0, time.UTC)

	seen := map[string]struct{}{"Known": {}}
	var names []string
	for len(names) < 6 {
		name := faker.Name()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	records := []signup.Record{
		paidSignup("Known", now.Add(-time.Hour), signup.TeamWhite, true),
		paidSignup("Ancient", now.Add(-45*24*time.Hour), signup.TeamWhite, true),
	}
	for i, name := range names {
		record := paidSignup(name, now.Add(-time.Duration(i+1)*time.Hour), signup.TeamDark, i%2 == 0)
		record.VenmoName = name + " V"
		records = append(records, record)
	}

	repo := memory.NewPlayerRepository([]player.Player{{Name: "Known"}})
	svc := NewPlayerService(repo, memory.NewSignupRepository(records), PlayerConfig{SyncWorkers: 3}, logging.NewNop())
	svc.now = fixedNow(now)

	result, err := svc.SyncNew(context.Background())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if result.NewPlayersFound != len(names) || result.PlayersCreated != len(names) {
		t.Fatalf("unexpected sync counts: %+v", result)
	}
	if result.WorkerCount != 3 || result.FailedCount != 0 {
		t.Fatalf("unexpected worker stats: %+v", result)
	}
	for _, name := range names {
		p, found, err := repo.GetByName(context.Background(), name)
		if err != nil || !found {
			t.Fatalf("expected %s to be created, found=%t err=%v", name, found, err)
		}
		if p.VenmoFullName != name+" V" {
			t.Fatalf("expected venmo name from sign-up, got %q", p.VenmoFullName)
		}
	}
	if _, found, _ := repo.GetByName(context.Background(), "Ancient"); found {
		t.Fatalf("sign-ups outside the lookback must be ignored")
	}

	again, err := svc.SyncNew(context.Background())
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if again.NewPlayersFound != 0 {
		t.Fatalf("expected nothing left to sync, got %+v", again)
	}
}
