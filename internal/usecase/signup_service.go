package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/player"
	"github.com/riskibarqy/soccernow/internal/domain/roster"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
)

// SubmitSignupInput is the incoming payload for creating or editing a sign-up.
type SubmitSignupInput struct {
	ID             string
	Name           string
	Money          *float64
	Date           string
	Paid           bool
	Team           string
	Goalkeeper     bool
	TeamOverridden bool
	ManualWaitlist *bool
	VenmoName      string
}

type SignupResult struct {
	Record       signup.Record
	Created      bool
	AutoBalanced bool
}

type SignupService struct {
	signupRepo signup.Repository
	playerRepo player.Repository
	players    *PlayerService
	location   *time.Location
	logger     *logging.Logger
	now        func() time.Time
}

func NewSignupService(
	signupRepo signup.Repository,
	playerRepo player.Repository,
	players *PlayerService,
	location *time.Location,
	logger *logging.Logger,
) *SignupService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SignupService{
		signupRepo: signupRepo,
		playerRepo: playerRepo,
		players:    players,
		location:   loadLocation(location),
		logger:     logger.Named("signup"),
		now:        time.Now,
	}
}

// Submit creates or edits one sign-up and reconciles it with the stored record.
func (s *SignupService) Submit(ctx context.Context, input SubmitSignupInput) (SignupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignupService.Submit")
	defer span.End()

	now := s.now()
	update, err := normalizeSubmitSignupInput(input, now, s.location)
	if err != nil {
		return SignupResult{}, err
	}

	existing, hasExisting, err := s.signupRepo.GetByID(ctx, update.ID)
	if err != nil {
		return SignupResult{}, fmt.Errorf("%w: get signup: %v", ErrDependencyUnavailable, err)
	}

	known, preferred := s.lookupPreferredTeam(ctx, update.Name)

	result := SignupResult{Created: !hasExisting}
	switch {
	case update.TeamOverridden:
		if update.Team == "" {
			return SignupResult{}, fmt.Errorf("%w: team is required when overridden", ErrInvalidInput)
		}
	case preferred != "":
		update.Team = preferred
	case !hasExisting:
		team, err := s.smallerTeam(ctx, now)
		if err != nil {
			return SignupResult{}, err
		}
		update.Team = team
		result.AutoBalanced = true
	default:
		if update.Team == "" {
			update.Team = existing.Team
		}
		if update.Team == "" {
			update.Team = signup.TeamDark
		}
	}

	var prior *signup.Record
	if hasExisting {
		prior = &existing
	}
	record := signup.Reconcile(prior, update, now)
	if err := record.Validate(); err != nil {
		return SignupResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.signupRepo.Upsert(ctx, record); err != nil {
		return SignupResult{}, fmt.Errorf("%w: save signup: %v", ErrDependencyUnavailable, err)
	}
	result.Record = record

	if !known && s.players != nil {
		if _, _, err := s.players.AutoPopulate(ctx, record.Name, record.VenmoName); err != nil {
			s.logger.WarnContext(ctx, "auto populate player failed", "name", record.Name, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "signup saved",
		"id", record.ID,
		"name", record.Name,
		"team", record.Team,
		"paid", record.Paid,
		"created", result.Created,
	)
	return result, nil
}

// SubmitBatch writes many sign-ups atomically.
func (s *SignupService) SubmitBatch(ctx context.Context, inputs []SubmitSignupInput) ([]signup.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignupService.SubmitBatch")
	defer span.End()

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one signup is required", ErrInvalidInput)
	}

	now := s.now()
	dir := player.NewDirectory(nil)
	if players, err := s.playerRepo.List(ctx); err != nil {
		s.logger.WarnContext(ctx, "player store unavailable, batch uses submitted teams", "error", err)
	} else {
		dir = player.NewDirectory(players)
	}

	stored, err := s.signupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list signups: %v", ErrDependencyUnavailable, err)
	}
	byID := make(map[string]signup.Record, len(stored))
	for _, record := range stored {
		byID[record.ID] = record
	}

	records := make([]signup.Record, 0, len(inputs))
	for i, input := range inputs {
		if input.Money == nil || *input.Money == 0 {
			fee := signup.GameFee
			input.Money = &fee
		}
		if strings.TrimSpace(input.ID) == "" && strings.TrimSpace(input.Date) == "" {
			input.ID = signup.FormatMillis(now.UnixMilli() + int64(i))
		}

		update, err := normalizeSubmitSignupInput(input, now, s.location)
		if err != nil {
			return nil, fmt.Errorf("signup %d: %w", i, err)
		}
		if !update.TeamOverridden {
			if p, ok := dir.LookupExact(update.Name); ok && p.Team.Valid() {
				update.Team = p.Team
			}
		}
		if update.Team == "" {
			update.Team = signup.TeamWhite
		}

		var prior *signup.Record
		if existing, ok := byID[update.ID]; ok {
			prior = &existing
		}
		record := signup.Reconcile(prior, update, now)
		byID[record.ID] = record
		records = append(records, record)
	}

	if err := s.signupRepo.UpsertBatch(ctx, records); err != nil {
		return nil, fmt.Errorf("%w: save signup batch: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "signup batch saved", "count", len(records))
	return records, nil
}

func (s *SignupService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignupService.Delete")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: signup id is required", ErrInvalidInput)
	}
	if err := s.signupRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete signup: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "signup deleted", "id", id)
	return nil
}

// lookupPreferredTeam reports whether the name is in the player directory and
// the team that entry prefers. A failed lookup counts as known so no
// duplicate profile is created.
func (s *SignupService) lookupPreferredTeam(ctx context.Context, name string) (bool, signup.Team) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "player lookup failed", "name", name, "error", err)
		return true, ""
	}

	p, ok := player.NewDirectory(players).Lookup(name)
	if !ok {
		return false, ""
	}
	if !p.Team.Valid() {
		return true, ""
	}
	return true, p.Team
}

func (s *SignupService) smallerTeam(ctx context.Context, now time.Time) (signup.Team, error) {
	records, err := s.signupRepo.ListByMoney(ctx, signup.GameFee)
	if err != nil {
		return "", fmt.Errorf("%w: list signups: %v", ErrDependencyUnavailable, err)
	}
	window := roster.ComputeWindow(now, s.location)
	return roster.AllocateWithOverrides(roster.MergeByPlayer(window.Filter(records))).Smaller(), nil
}

func normalizeSubmitSignupInput(input SubmitSignupInput, now time.Time, loc *time.Location) (signup.Update, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return signup.Update{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	var money float64
	if input.Money != nil {
		money = *input.Money
	}
	if money < 0 {
		return signup.Update{}, fmt.Errorf("%w: money must be >= 0", ErrInvalidInput)
	}

	var team signup.Team
	if strings.TrimSpace(input.Team) != "" {
		parsed, ok := signup.ParseTeam(input.Team)
		if !ok {
			return signup.Update{}, fmt.Errorf("%w: team must be white or dark", ErrInvalidInput)
		}
		team = parsed
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = signupTimestamp(input.Date, now, loc)
	}

	return signup.Update{
		ID:             id,
		Name:           name,
		Money:          money,
		Date:           id,
		Paid:           input.Paid,
		Team:           team,
		Goalkeeper:     input.Goalkeeper,
		TeamOverridden: input.TeamOverridden,
		ManualWaitlist: input.ManualWaitlist,
		VenmoName:      strings.TrimSpace(input.VenmoName),
	}, nil
}

// signupTimestamp converts a submitted date into epoch milliseconds. Digits are
// taken as milliseconds already; RFC 3339 and calendar dates are parsed; anything
// else falls back to now.
func signupTimestamp(raw string, now time.Time, loc *time.Location) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return signup.FormatMillis(now.UnixMilli())
	}
	if isDigits(value) {
		return signup.FormatMillis(signup.LeadingInt(value))
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return signup.FormatMillis(t.UnixMilli())
	}
	if t, err := time.ParseInLocation(roster.DateIDLayout, value, loadLocation(loc)); err == nil {
		return signup.FormatMillis(t.UnixMilli())
	}
	return signup.FormatMillis(now.UnixMilli())
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}
