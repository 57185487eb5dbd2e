package postgres

import (
	"database/sql"

	"github.com/riskibarqy/soccernow/internal/domain/comment"
	"github.com/riskibarqy/soccernow/internal/domain/game"
	"github.com/riskibarqy/soccernow/internal/domain/player"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
	"github.com/riskibarqy/soccernow/internal/domain/vote"
)

type signupTableModel struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	Money          float64        `db:"money"`
	Date           string         `db:"date"`
	Paid           bool           `db:"paid"`
	Team           string         `db:"team"`
	Goalkeeper     bool           `db:"goalkeeper"`
	TeamOverridden bool           `db:"team_overridden"`
	ManualWaitlist bool           `db:"manual_waitlist"`
	VenmoName      string         `db:"venmo_name"`
	CreatedAt      string         `db:"created_at"`
	PaidAt         sql.NullString `db:"paid_at"`
	LastEditedAt   string         `db:"last_edited_at"`
}

func signupRow(r signup.Record) signupTableModel {
	return signupTableModel{
		ID:             r.ID,
		Name:           r.Name,
		Money:          r.Money,
		Date:           r.Date,
		Paid:           r.Paid,
		Team:           string(r.Team),
		Goalkeeper:     r.Goalkeeper,
		TeamOverridden: r.TeamOverridden,
		ManualWaitlist: r.ManualWaitlist,
		VenmoName:      r.VenmoName,
		CreatedAt:      r.CreatedAt,
		PaidAt:         nullString(r.PaidAt),
		LastEditedAt:   r.LastEditedAt,
	}
}

func (m signupTableModel) toDomain() signup.Record {
	return signup.Record{
		ID:             m.ID,
		Name:           m.Name,
		Money:          m.Money,
		Date:           m.Date,
		Paid:           m.Paid,
		Team:           signup.Team(m.Team),
		Goalkeeper:     m.Goalkeeper,
		TeamOverridden: m.TeamOverridden,
		ManualWaitlist: m.ManualWaitlist,
		VenmoName:      m.VenmoName,
		CreatedAt:      m.CreatedAt,
		PaidAt:         m.PaidAt.String,
		LastEditedAt:   m.LastEditedAt,
	}
}

type playerTableModel struct {
	Name            string  `db:"name"`
	Team            string  `db:"team"`
	Rating          float64 `db:"rating"`
	Position        string  `db:"position"`
	Goalkeeper      bool    `db:"goalkeeper"`
	Favorite        bool    `db:"favorite"`
	Paid            bool    `db:"paid"`
	VenmoFullName   string  `db:"venmo_full_name"`
	WhatsAppName    string  `db:"whatsapp_name"`
	PhoneNumber     string  `db:"phone_number"`
	AutoCreated     bool    `db:"auto_created"`
	CreatedAt       string  `db:"created_at"`
	UpdatedAt       string  `db:"updated_at"`
	LastPaymentDate string  `db:"last_payment_date"`
}

func playerRow(p player.Player) playerTableModel {
	return playerTableModel{
		Name:            p.Name,
		Team:            string(p.Team),
		Rating:          p.Rating,
		Position:        string(p.Position),
		Goalkeeper:      p.Goalkeeper,
		Favorite:        p.Favorite,
		Paid:            p.Paid,
		VenmoFullName:   p.VenmoFullName,
		WhatsAppName:    p.WhatsAppName,
		PhoneNumber:     p.PhoneNumber,
		AutoCreated:     p.AutoCreated,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		LastPaymentDate: p.LastPaymentDate,
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		Name:            m.Name,
		Team:            signup.Team(m.Team),
		Rating:          m.Rating,
		Position:        player.Position(m.Position),
		Goalkeeper:      m.Goalkeeper,
		Favorite:        m.Favorite,
		Paid:            m.Paid,
		VenmoFullName:   m.VenmoFullName,
		WhatsAppName:    m.WhatsAppName,
		PhoneNumber:     m.PhoneNumber,
		AutoCreated:     m.AutoCreated,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		LastPaymentDate: m.LastPaymentDate,
	}
}

type rosterEntryJSON struct {
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Position   string  `json:"position"`
	Goalkeeper bool    `json:"goalkeeper"`
}

type teamJSON struct {
	Roster         []rosterEntryJSON `json:"roster"`
	TotalRating    float64           `json:"totalRating"`
	AvgRating      float64           `json:"avgRating"`
	WinProbability float64           `json:"winProbability"`
}

type finalScoreJSON struct {
	White     int    `json:"white"`
	Dark      int    `json:"dark"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type gameTableModel struct {
	GameDate     string                 `db:"game_date"`
	WhiteTeam    jsonb[teamJSON]        `db:"white_team"`
	DarkTeam     jsonb[teamJSON]        `db:"dark_team"`
	TotalPlayers int                    `db:"total_players"`
	FinalScore   jsonb[*finalScoreJSON] `db:"final_score"`
	ArchivedAt   string                 `db:"archived_at"`
	CreatedAt    string                 `db:"created_at"`
	AutoArchived bool                   `db:"auto_archived"`
}

func teamToJSON(t game.TeamSnapshot) teamJSON {
	roster := make([]rosterEntryJSON, 0, len(t.Roster))
	for _, e := range t.Roster {
		roster = append(roster, rosterEntryJSON{
			Name:       e.Name,
			Rating:     e.Rating,
			Position:   string(e.Position),
			Goalkeeper: e.Goalkeeper,
		})
	}
	return teamJSON{
		Roster:         roster,
		TotalRating:    t.TotalRating,
		AvgRating:      t.AvgRating,
		WinProbability: t.WinProbability,
	}
}

func (t teamJSON) toDomain() game.TeamSnapshot {
	roster := make([]game.RosterEntry, 0, len(t.Roster))
	for _, e := range t.Roster {
		roster = append(roster, game.RosterEntry{
			Name:       e.Name,
			Rating:     e.Rating,
			Position:   player.Position(e.Position),
			Goalkeeper: e.Goalkeeper,
		})
	}
	return game.TeamSnapshot{
		Roster:         roster,
		TotalRating:    t.TotalRating,
		AvgRating:      t.AvgRating,
		WinProbability: t.WinProbability,
	}
}

func scoreToJSON(s *game.FinalScore) *finalScoreJSON {
	if s == nil {
		return nil
	}
	return &finalScoreJSON{White: s.White, Dark: s.Dark, UpdatedAt: s.UpdatedAt}
}

func gameRow(g game.Game) gameTableModel {
	return gameTableModel{
		GameDate:     g.GameDate,
		WhiteTeam:    jsonb[teamJSON]{V: teamToJSON(g.WhiteTeam)},
		DarkTeam:     jsonb[teamJSON]{V: teamToJSON(g.DarkTeam)},
		TotalPlayers: g.TotalPlayers,
		FinalScore:   jsonb[*finalScoreJSON]{V: scoreToJSON(g.FinalScore)},
		ArchivedAt:   g.ArchivedAt,
		CreatedAt:    g.CreatedAt,
		AutoArchived: g.AutoArchived,
	}
}

func (m gameTableModel) toDomain() game.Game {
	g := game.Game{
		GameDate:     m.GameDate,
		WhiteTeam:    m.WhiteTeam.V.toDomain(),
		DarkTeam:     m.DarkTeam.V.toDomain(),
		TotalPlayers: m.TotalPlayers,
		ArchivedAt:   m.ArchivedAt,
		CreatedAt:    m.CreatedAt,
		AutoArchived: m.AutoArchived,
	}
	if s := m.FinalScore.V; s != nil {
		g.FinalScore = &game.FinalScore{White: s.White, Dark: s.Dark, UpdatedAt: s.UpdatedAt}
	}
	return g
}

type voteTableModel struct {
	ID         string `db:"id"`
	GameID     string `db:"game_id"`
	PlayerName string `db:"player_name"`
	Team       string `db:"team"`
	Rating     int    `db:"rating"`
	VoterID    string `db:"voter_id"`
	UpdatedAt  string `db:"updated_at"`
}

func voteRow(v vote.Vote) voteTableModel {
	return voteTableModel(v)
}

func (m voteTableModel) toDomain() vote.Vote {
	return vote.Vote(m)
}

type commentTableModel struct {
	ID           string `db:"id"`
	GameID       string `db:"game_id"`
	AuthorName   string `db:"author_name"`
	Content      string `db:"content"`
	CreatedAt    string `db:"created_at"`
	MigratedFrom string `db:"migrated_from"`
	MigratedAt   string `db:"migrated_at"`
}

func commentRow(c comment.Comment) commentTableModel {
	return commentTableModel(c)
}

func (m commentTableModel) toDomain() comment.Comment {
	return comment.Comment(m)
}
