package player

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

// Position is the pitch role shown on rosters.
type Position string

const (
	PositionGoalkeeper Position = "goalkeeper"
	PositionDefender   Position = "defender"
	PositionMidfielder Position = "midfielder"
	PositionStriker    Position = "striker"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionStriker:    {},
}

const (
	DefaultRating    = 7.0
	GoalkeeperRating = 8.0
	MinRating        = 1.0
	MaxRating        = 10.0
	DefaultPosition  = PositionMidfielder
)

// Player is a directory entry independent of any single week.
type Player struct {
	Name            string
	Team            signup.Team
	Rating          float64
	Position        Position
	Goalkeeper      bool
	Favorite        bool
	Paid            bool
	VenmoFullName   string
	WhatsAppName    string
	PhoneNumber     string
	AutoCreated     bool
	CreatedAt       string
	UpdatedAt       string
	LastPaymentDate string
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Team != "" && !p.Team.Valid() {
		return fmt.Errorf("invalid player team: %s", p.Team)
	}
	if p.Rating != 0 && (p.Rating < MinRating || p.Rating > MaxRating) {
		return fmt.Errorf("player rating must be between %.0f and %.0f", MinRating, MaxRating)
	}
	if p.Position != "" {
		if _, ok := AllPositions[p.Position]; !ok {
			return fmt.Errorf("invalid player position: %s", p.Position)
		}
	}

	return nil
}

// WithDefaults fills the fields a stored directory entry must always carry.
func WithDefaults(p Player) Player {
	p.Name = strings.TrimSpace(p.Name)
	if p.Team == "" {
		p.Team = signup.TeamWhite
	}
	if p.Rating == 0 {
		p.Rating = DefaultRating
	}
	if p.Position == "" {
		p.Position = DefaultPosition
	}
	return p
}

// NormalizeName is the case and whitespace insensitive directory key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DefaultPlayers is served when the directory store cannot be read.
func DefaultPlayers() []Player {
	return []Player{
		{Name: "Alberto Monta", VenmoFullName: "Alberto Monta", WhatsAppName: "Alberto Monta", Team: signup.TeamWhite, Rating: 8.5, Position: PositionStriker, Favorite: true},
		{Name: "Gavin Jay", VenmoFullName: "Gavin Jay", WhatsAppName: "Gavin Jay", Team: signup.TeamWhite, Rating: 8.0, Position: PositionMidfielder},
		{Name: "Andrea Ciccardi", VenmoFullName: "Andrea Ciccardi", WhatsAppName: "Andrea Ciccardi", Team: signup.TeamWhite, Rating: 8.2, Position: PositionStriker},
		{Name: "Gabe", VenmoFullName: "Gabe", WhatsAppName: "Gabe", Team: signup.TeamWhite, Rating: 8.8, Position: PositionGoalkeeper, Goalkeeper: true, Paid: true, Favorite: true},
	}
}
