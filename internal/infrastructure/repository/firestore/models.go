package firestore

import (
	"github.com/riskibarqy/soccernow/internal/domain/comment"
	"github.com/riskibarqy/soccernow/internal/domain/game"
	"github.com/riskibarqy/soccernow/internal/domain/player"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
	"github.com/riskibarqy/soccernow/internal/domain/vote"
)

type signupDoc struct {
	ID             string  `firestore:"id"`
	Name           string  `firestore:"name"`
	Money          float64 `firestore:"money"`
	Date           string  `firestore:"date"`
	Paid           bool    `firestore:"paid"`
	Team           string  `firestore:"team"`
	Goalkeeper     bool    `firestore:"goalkeeper"`
	TeamOverridden bool    `firestore:"teamOverridden"`
	ManualWaitlist bool    `firestore:"manualWaitlist"`
	VenmoName      string  `firestore:"venmoName,omitempty"`
	CreatedAt      string  `firestore:"createdAt,omitempty"`
	PaidAt         *string `firestore:"paidAt"`
	LastEditedAt   string  `firestore:"lastEditedAt,omitempty"`
}

func signupToDoc(r signup.Record) signupDoc {
	doc := signupDoc{
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
		LastEditedAt:   r.LastEditedAt,
	}
	if r.PaidAt != "" {
		paidAt := r.PaidAt
		doc.PaidAt = &paidAt
	}
	return doc
}

func (d signupDoc) toDomain(docID string) signup.Record {
	id := d.ID
	if id == "" {
		id = docID
	}
	rec := signup.Record{
		ID:             id,
		Name:           d.Name,
		Money:          d.Money,
		Date:           d.Date,
		Paid:           d.Paid,
		Team:           signup.Team(d.Team),
		Goalkeeper:     d.Goalkeeper,
		TeamOverridden: d.TeamOverridden,
		ManualWaitlist: d.ManualWaitlist,
		VenmoName:      d.VenmoName,
		CreatedAt:      d.CreatedAt,
		LastEditedAt:   d.LastEditedAt,
	}
	if d.PaidAt != nil {
		rec.PaidAt = *d.PaidAt
	}
	return rec
}

type playerDoc struct {
	Name            string  `firestore:"name"`
	Team            string  `firestore:"team,omitempty"`
	Rating          float64 `firestore:"rating"`
	Position        string  `firestore:"position"`
	Goalkeeper      bool    `firestore:"goalkeeper"`
	Favorite        bool    `firestore:"favorite"`
	Paid            bool    `firestore:"paid"`
	VenmoFullName   string  `firestore:"venmoFullName,omitempty"`
	WhatsAppName    string  `firestore:"whatsAppName,omitempty"`
	PhoneNumber     string  `firestore:"phoneNumber,omitempty"`
	AutoCreated     bool    `firestore:"autoCreated,omitempty"`
	CreatedAt       string  `firestore:"createdAt,omitempty"`
	UpdatedAt       string  `firestore:"updatedAt,omitempty"`
	LastPaymentDate string  `firestore:"lastPaymentDate,omitempty"`
}

func playerToDoc(p player.Player) playerDoc {
	return playerDoc{
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

func (d playerDoc) toDomain(docID string) player.Player {
	name := d.Name
	if name == "" {
		name = docID
	}
	return player.Player{
		Name:            name,
		Team:            signup.Team(d.Team),
		Rating:          d.Rating,
		Position:        player.Position(d.Position),
		Goalkeeper:      d.Goalkeeper,
		Favorite:        d.Favorite,
		Paid:            d.Paid,
		VenmoFullName:   d.VenmoFullName,
		WhatsAppName:    d.WhatsAppName,
		PhoneNumber:     d.PhoneNumber,
		AutoCreated:     d.AutoCreated,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		LastPaymentDate: d.LastPaymentDate,
	}
}

type rosterEntryDoc struct {
	Name       string  `firestore:"name"`
	Rating     float64 `firestore:"rating"`
	Position   string  `firestore:"position"`
	Goalkeeper bool    `firestore:"goalkeeper"`
}

type teamDoc struct {
	Roster         []rosterEntryDoc `firestore:"roster"`
	TotalRating    float64          `firestore:"totalRating"`
	AvgRating      float64          `firestore:"avgRating"`
	WinProbability float64          `firestore:"winProbability"`
}

type finalScoreDoc struct {
	White     int    `firestore:"white"`
	Dark      int    `firestore:"dark"`
	UpdatedAt string `firestore:"updatedAt,omitempty"`
}

type gameDoc struct {
	GameDate     string         `firestore:"gameDate"`
	WhiteTeam    teamDoc        `firestore:"whiteTeam"`
	DarkTeam     teamDoc        `firestore:"darkTeam"`
	TotalPlayers int            `firestore:"totalPlayers"`
	FinalScore   *finalScoreDoc `firestore:"finalScore"`
	ArchivedAt   string         `firestore:"archivedAt,omitempty"`
	CreatedAt    string         `firestore:"createdAt,omitempty"`
	AutoArchived bool           `firestore:"autoArchived"`
}

func teamToDoc(t game.TeamSnapshot) teamDoc {
	roster := make([]rosterEntryDoc, 0, len(t.Roster))
	for _, e := range t.Roster {
		roster = append(roster, rosterEntryDoc{
			Name:       e.Name,
			Rating:     e.Rating,
			Position:   string(e.Position),
			Goalkeeper: e.Goalkeeper,
		})
	}
	return teamDoc{
		Roster:         roster,
		TotalRating:    t.TotalRating,
		AvgRating:      t.AvgRating,
		WinProbability: t.WinProbability,
	}
}

func (d teamDoc) toDomain() game.TeamSnapshot {
	roster := make([]game.RosterEntry, 0, len(d.Roster))
	for _, e := range d.Roster {
		roster = append(roster, game.RosterEntry{
			Name:       e.Name,
			Rating:     e.Rating,
			Position:   player.Position(e.Position),
			Goalkeeper: e.Goalkeeper,
		})
	}
	return game.TeamSnapshot{
		Roster:         roster,
		TotalRating:    d.TotalRating,
		AvgRating:      d.AvgRating,
		WinProbability: d.WinProbability,
	}
}

func gameToDoc(g game.Game) gameDoc {
	doc := gameDoc{
		GameDate:     g.GameDate,
		WhiteTeam:    teamToDoc(g.WhiteTeam),
		DarkTeam:     teamToDoc(g.DarkTeam),
		TotalPlayers: g.TotalPlayers,
		ArchivedAt:   g.ArchivedAt,
		CreatedAt:    g.CreatedAt,
		AutoArchived: g.AutoArchived,
	}
	if g.FinalScore != nil {
		doc.FinalScore = &finalScoreDoc{
			White:     g.FinalScore.White,
			Dark:      g.FinalScore.Dark,
			UpdatedAt: g.FinalScore.UpdatedAt,
		}
	}
	return doc
}

func (d gameDoc) toDomain(docID string) game.Game {
	gameDate := d.GameDate
	if gameDate == "" {
		gameDate = docID
	}
	g := game.Game{
		GameDate:     gameDate,
		WhiteTeam:    d.WhiteTeam.toDomain(),
		DarkTeam:     d.DarkTeam.toDomain(),
		TotalPlayers: d.TotalPlayers,
		ArchivedAt:   d.ArchivedAt,
		CreatedAt:    d.CreatedAt,
		AutoArchived: d.AutoArchived,
	}
	if d.FinalScore != nil {
		g.FinalScore = &game.FinalScore{
			White:     d.FinalScore.White,
			Dark:      d.FinalScore.Dark,
			UpdatedAt: d.FinalScore.UpdatedAt,
		}
	}
	return g
}

type voteDoc struct {
	GameID     string `firestore:"gameId"`
	PlayerName string `firestore:"playerName"`
	Team       string `firestore:"team"`
	Rating     int    `firestore:"rating"`
	VoterID    string `firestore:"voterId"`
	UpdatedAt  string `firestore:"updatedAt"`
}

func voteToDoc(v vote.Vote) voteDoc {
	return voteDoc{
		GameID:     v.GameID,
		PlayerName: v.PlayerName,
		Team:       v.Team,
		Rating:     v.Rating,
		VoterID:    v.VoterID,
		UpdatedAt:  v.UpdatedAt,
	}
}

func (d voteDoc) toDomain(docID string) vote.Vote {
	return vote.Vote{
		ID:         docID,
		GameID:     d.GameID,
		PlayerName: d.PlayerName,
		Team:       d.Team,
		Rating:     d.Rating,
		VoterID:    d.VoterID,
		UpdatedAt:  d.UpdatedAt,
	}
}

type commentDoc struct {
	GameID       string `firestore:"gameId"`
	AuthorName   string `firestore:"authorName"`
	Content      string `firestore:"content"`
	CreatedAt    string `firestore:"createdAt"`
	MigratedFrom string `firestore:"migratedFrom,omitempty"`
	MigratedAt   string `firestore:"migratedAt,omitempty"`
}

func commentToDoc(c comment.Comment) commentDoc {
	return commentDoc{
		GameID:       c.GameID,
		AuthorName:   c.AuthorName,
		Content:      c.Content,
		CreatedAt:    c.CreatedAt,
		MigratedFrom: c.MigratedFrom,
		MigratedAt:   c.MigratedAt,
	}
}

func (d commentDoc) toDomain(docID string) comment.Comment {
	return comment.Comment{
		ID:           docID,
		GameID:       d.GameID,
		AuthorName:   d.AuthorName,
		Content:      d.Content,
		CreatedAt:    d.CreatedAt,
		MigratedFrom: d.MigratedFrom,
		MigratedAt:   d.MigratedAt,
	}
}
