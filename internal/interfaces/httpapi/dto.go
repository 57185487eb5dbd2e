package httpapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/soccernow/internal/domain/comment"
	"github.com/riskibarqy/soccernow/internal/domain/game"
	"github.com/riskibarqy/soccernow/internal/domain/player"
	"github.com/riskibarqy/soccernow/internal/domain/roster"
	"github.com/riskibarqy/soccernow/internal/domain/signup"
	"github.com/riskibarqy/soccernow/internal/domain/vote"
	"github.com/riskibarqy/soccernow/internal/usecase"
)

// flexString accepts either a JSON string or a JSON number. Browser clients
// send epoch-millis dates as numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*f = ""
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("expected string or number, got %s", raw)
	}
	*f = flexString(raw)
	return nil
}

type submitSignupRequest struct {
	ID             flexString `json:"id" validate:"max=64"`
	Name           string     `json:"name" validate:"required,max=100"`
	Money          *float64   `json:"money" validate:"omitempty,gte=0"`
	Date           flexString `json:"date" validate:"max=64"`
	Paid           bool       `json:"paid"`
	Team           string     `json:"team" validate:"omitempty,oneof=white dark"`
	Goalkeeper     bool       `json:"goalkeeper"`
	TeamOverridden bool       `json:"teamOverridden"`
	ManualWaitlist *bool      `json:"manualWaitlist"`
	VenmoName      string     `json:"venmoName" validate:"max=100"`
}

func (r submitSignupRequest) toInput() usecase.SubmitSignupInput {
	return usecase.SubmitSignupInput{
		ID:             string(r.ID),
		Name:           r.Name,
		Money:          r.Money,
		Date:           string(r.Date),
		Paid:           r.Paid,
		Team:           r.Team,
		Goalkeeper:     r.Goalkeeper,
		TeamOverridden: r.TeamOverridden,
		ManualWaitlist: r.ManualWaitlist,
		VenmoName:      r.VenmoName,
	}
}

type submitSignupBatchRequest struct {
	Signups []submitSignupRequest `json:"signups" validate:"required,min=1,dive"`
}

type rosterEntryRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Rating     float64 `json:"rating" validate:"omitempty,gte=1,lte=10"`
	Position   string  `json:"position" validate:"omitempty,oneof=goalkeeper defender midfielder striker"`
	Goalkeeper bool    `json:"goalkeeper"`
}

type createGameRequest struct {
	GameDate  string               `json:"gameDate" validate:"required,datetime=2006-01-02"`
	WhiteTeam []rosterEntryRequest `json:"whiteTeam" validate:"required,dive"`
	DarkTeam  []rosterEntryRequest `json:"darkTeam" validate:"required,dive"`
}

func rosterEntriesFromRequest(items []rosterEntryRequest) []game.RosterEntry {
	out := make([]game.RosterEntry, 0, len(items))
	for _, item := range items {
		out = append(out, game.RosterEntry{
			Name:       item.Name,
			Rating:     item.Rating,
			Position:   player.Position(item.Position),
			Goalkeeper: item.Goalkeeper,
		})
	}
	return out
}

type updateScoreRequest struct {
	White *int `json:"white" validate:"required,gte=0"`
	Dark  *int `json:"dark" validate:"required,gte=0"`
}

type submitVoteRequest struct {
	PlayerName string `json:"playerName" validate:"required,max=100"`
	Team       string `json:"team" validate:"max=20"`
	Rating     int    `json:"rating"`
}

type migrateRequest struct {
	FromGameID string `json:"fromGameId" validate:"required"`
	ToGameID   string `json:"toGameId" validate:"required"`
}

type addCommentRequest struct {
	AuthorName string `json:"authorName"`
	Content    string `json:"content"`
}

type playerRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	Team          string  `json:"team" validate:"omitempty,oneof=white dark"`
	Rating        float64 `json:"rating" validate:"omitempty,gte=1,lte=10"`
	Position      string  `json:"position" validate:"omitempty,oneof=goalkeeper defender midfielder striker"`
	Goalkeeper    bool    `json:"goalkeeper"`
	Favorite      bool    `json:"favorite"`
	Paid          bool    `json:"paid"`
	VenmoFullName string  `json:"venmoFullName"`
	WhatsAppName  string  `json:"whatsAppName"`
	PhoneNumber   string  `json:"phoneNumber"`
}

func (r playerRequest) toPlayer() player.Player {
	return player.Player{
		Name:          r.Name,
		Team:          signup.Team(r.Team),
		Rating:        r.Rating,
		Position:      player.Position(r.Position),
		Goalkeeper:    r.Goalkeeper,
		Favorite:      r.Favorite,
		Paid:          r.Paid,
		VenmoFullName: r.VenmoFullName,
		WhatsAppName:  r.WhatsAppName,
		PhoneNumber:   r.PhoneNumber,
	}
}

type replacePlayersRequest struct {
	Players []playerRequest `json:"players" validate:"required,dive"`
}

type autoPopulateRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	VenmoName string `json:"venmoName" validate:"max=100"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Money          float64 `json:"money"`
	Date           string  `json:"date"`
	Paid           bool    `json:"paid"`
	Team           string  `json:"team"`
	Goalkeeper     bool    `json:"goalkeeper"`
	TeamOverridden bool    `json:"teamOverridden"`
	ManualWaitlist bool    `json:"manualWaitlist"`
	VenmoName      string  `json:"venmoName,omitempty"`
	CreatedAt      string  `json:"createdAt,omitempty"`
	PaidAt         string  `json:"paidAt,omitempty"`
	LastEditedAt   string  `json:"lastEditedAt,omitempty"`
}

func signupToDTO(r signup.Record) signupDTO {
	return signupDTO{
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
		PaidAt:         r.PaidAt,
		LastEditedAt:   r.LastEditedAt,
	}
}

func signupsToDTO(records []signup.Record) []signupDTO {
	out := make([]signupDTO, 0, len(records))
	for _, r := range records {
		out = append(out, signupToDTO(r))
	}
	return out
}

type theoreticalWaitlistDTO struct {
	signupDTO
	TheoreticalWaitlistOrder  int   `json:"theoreticalWaitlistOrder"`
	TheoreticalQueueTimestamp int64 `json:"theoreticalQueueTimestamp"`
}

type latePayerDTO struct {
	signupDTO
	LatePayerOrder     int   `json:"latePayerOrder"`
	LatePayerTimestamp int64 `json:"latePayerTimestamp"`
}

type signupResultDTO struct {
	Signup       signupDTO `json:"signup"`
	Created      bool      `json:"created"`
	AutoBalanced bool      `json:"autoBalanced"`
}

type rosterDebugDTO struct {
	Now                  string   `json:"now"`
	TotalFromStore       int      `json:"totalFromStore"`
	AfterDateFilter      int      `json:"afterDateFilter"`
	FinalPlayerCount     int      `json:"finalPlayerCount"`
	PaidQueueCount       int      `json:"paidQueueCount"`
	WhiteCount           int      `json:"whiteCount"`
	DarkCount            int      `json:"darkCount"`
	WaitlistCount        int      `json:"waitlistCount"`
	TheoreticalCount     int      `json:"theoreticalWaitlistCount"`
	LatePayersCount      int      `json:"latePayersCount"`
	AllFilteredNames     []string `json:"allFilteredNames"`
	AutoArchiveTriggered bool     `json:"autoArchiveTriggered"`
}

type rosterDTO struct {
	ThursdayID            string                   `json:"thursdayId"`
	WindowStart           string                   `json:"windowStart"`
	WindowEnd             string                   `json:"windowEnd"`
	WhiteTeam             []signupDTO              `json:"whiteTeam"`
	DarkTeam              []signupDTO              `json:"darkTeam"`
	Waitlist              []signupDTO              `json:"waitlist"`
	TheoreticalWaitlist   []theoreticalWaitlistDTO `json:"theoreticalWaitlist"`
	LatePayersNotWaitlist []latePayerDTO           `json:"latePayersNotWaitlist"`
	TotalPlayers          int                      `json:"totalPlayers"`
	MockData              bool                     `json:"mockData,omitempty"`
	Debug                 *rosterDebugDTO          `json:"debug,omitempty"`
}

func rosterToDTO(view usecase.RosterView) rosterDTO {
	out := rosterDTO{
		ThursdayID:            view.Window.ThursdayID,
		WindowStart:           view.Window.Start.Format(time.RFC3339),
		WindowEnd:             view.Window.End.Format(time.RFC3339Nano),
		WhiteTeam:             signupsToDTO(view.Allocation.White),
		DarkTeam:              signupsToDTO(view.Allocation.Dark),
		Waitlist:              signupsToDTO(view.Allocation.Waitlist),
		TheoreticalWaitlist:   make([]theoreticalWaitlistDTO, 0, len(view.Queue.Waitlist)),
		LatePayersNotWaitlist: make([]latePayerDTO, 0, len(view.Queue.LatePayers)),
		TotalPlayers:          len(view.Allocation.White) + len(view.Allocation.Dark),
		MockData:              view.MockData,
	}
	for _, item := range view.Queue.Waitlist {
		out.TheoreticalWaitlist = append(out.TheoreticalWaitlist, queuedToWaitlistDTO(item))
	}
	for _, item := range view.Queue.LatePayers {
		out.LatePayersNotWaitlist = append(out.LatePayersNotWaitlist, latePayerDTO{
			signupDTO:          signupToDTO(item.Record),
			LatePayerOrder:     item.Order,
			LatePayerTimestamp: item.Timestamp,
		})
	}

	if d := view.Debug; d != nil {
		names := d.AllFilteredNames
		if names == nil {
			names = []string{}
		}
		out.Debug = &rosterDebugDTO{
			Now:                  d.Now.Format(time.RFC3339Nano),
			TotalFromStore:       d.TotalFromStore,
			AfterDateFilter:      d.AfterDateFilter,
			FinalPlayerCount:     d.FinalPlayerCount,
			PaidQueueCount:       d.PaidQueueCount,
			WhiteCount:           d.WhiteCount,
			DarkCount:            d.DarkCount,
			WaitlistCount:        d.WaitlistCount,
			TheoreticalCount:     d.TheoreticalCount,
			LatePayersCount:      d.LatePayersCount,
			AllFilteredNames:     names,
			AutoArchiveTriggered: d.AutoArchiveTriggered,
		}
	}
	return out
}

func queuedToWaitlistDTO(item roster.QueuedRecord) theoreticalWaitlistDTO {
	return theoreticalWaitlistDTO{
		signupDTO:                 signupToDTO(item.Record),
		TheoreticalWaitlistOrder:  item.Order,
		TheoreticalQueueTimestamp: item.Timestamp,
	}
}

type rosterEntryDTO struct {
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Position   string  `json:"position"`
	Goalkeeper bool    `json:"goalkeeper"`
}

type teamSnapshotDTO struct {
	Roster         []rosterEntryDTO `json:"roster"`
	TotalRating    float64          `json:"totalRating"`
	AvgRating      float64          `json:"avgRating"`
	WinProbability float64          `json:"winProbability"`
}

func teamSnapshotToDTO(t game.TeamSnapshot) teamSnapshotDTO {
	out := teamSnapshotDTO{
		Roster:         make([]rosterEntryDTO, 0, len(t.Roster)),
		TotalRating:    t.TotalRating,
		AvgRating:      t.AvgRating,
		WinProbability: t.WinProbability,
	}
	for _, e := range t.Roster {
		out.Roster = append(out.Roster, rosterEntryDTO{
			Name:       e.Name,
			Rating:     e.Rating,
			Position:   string(e.Position),
			Goalkeeper: e.Goalkeeper,
		})
	}
	return out
}

type oddsDTO struct {
	ThursdayID string          `json:"thursdayId"`
	WhiteTeam  teamSnapshotDTO `json:"whiteTeam"`
	DarkTeam   teamSnapshotDTO `json:"darkTeam"`
}

type finalScoreDTO struct {
	White     int    `json:"white"`
	Dark      int    `json:"dark"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func finalScoreToDTO(s *game.FinalScore) *finalScoreDTO {
	if s == nil {
		return nil
	}
	return &finalScoreDTO{White: s.White, Dark: s.Dark, UpdatedAt: s.UpdatedAt}
}

type gameDTO struct {
	GameDate     string          `json:"gameDate"`
	WhiteTeam    teamSnapshotDTO `json:"whiteTeam"`
	DarkTeam     teamSnapshotDTO `json:"darkTeam"`
	TotalPlayers int             `json:"totalPlayers"`
	FinalScore   *finalScoreDTO  `json:"finalScore"`
	ArchivedAt   string          `json:"archivedAt,omitempty"`
	CreatedAt    string          `json:"createdAt,omitempty"`
	AutoArchived bool            `json:"autoArchived,omitempty"`
}

func gameToDTO(g game.Game) gameDTO {
	return gameDTO{
		GameDate:     g.GameDate,
		WhiteTeam:    teamSnapshotToDTO(g.WhiteTeam),
		DarkTeam:     teamSnapshotToDTO(g.DarkTeam),
		TotalPlayers: g.TotalPlayers,
		FinalScore:   finalScoreToDTO(g.FinalScore),
		ArchivedAt:   g.ArchivedAt,
		CreatedAt:    g.CreatedAt,
		AutoArchived: g.AutoArchived,
	}
}

type voteDTO struct {
	ID         string `json:"id"`
	GameID     string `json:"gameId"`
	PlayerName string `json:"playerName"`
	Team       string `json:"team"`
	Rating     int    `json:"rating"`
	UpdatedAt  string `json:"updatedAt"`
}

func voteToDTO(v vote.Vote) voteDTO {
	return voteDTO{
		ID:         v.ID,
		GameID:     v.GameID,
		PlayerName: v.PlayerName,
		Team:       v.Team,
		Rating:     v.Rating,
		UpdatedAt:  v.UpdatedAt,
	}
}

type ratingSummaryDTO struct {
	PlayerName  string  `json:"playerName"`
	Team        string  `json:"team"`
	TotalRating int     `json:"totalRating"`
	TotalVotes  int     `json:"totalVotes"`
	AvgRating   float64 `json:"avgRating"`
}

func summariesToDTO(items []vote.Summary) []ratingSummaryDTO {
	out := make([]ratingSummaryDTO, 0, len(items))
	for _, s := range items {
		out = append(out, ratingSummaryDTO{
			PlayerName:  s.PlayerName,
			Team:        s.Team,
			TotalRating: s.TotalRating,
			TotalVotes:  s.TotalVotes,
			AvgRating:   s.AvgRating,
		})
	}
	return out
}

type gameRatingsDTO struct {
	Ratings   []ratingSummaryDTO `json:"ratings"`
	MyRatings map[string]int     `json:"myRatings"`
}

type leaderboardDTO struct {
	Best  []ratingSummaryDTO `json:"best"`
	Worst []ratingSummaryDTO `json:"worst"`
	All   []ratingSummaryDTO `json:"all"`
}

type migrateResultDTO struct {
	FromGameID string `json:"fromGameId"`
	ToGameID   string `json:"toGameId"`
	Migrated   int    `json:"migrated"`
}

type commentDTO struct {
	ID           string `json:"id"`
	GameID       string `json:"gameId"`
	AuthorName   string `json:"authorName"`
	Content      string `json:"content"`
	CreatedAt    string `json:"createdAt"`
	MigratedFrom string `json:"migratedFrom,omitempty"`
	MigratedAt   string `json:"migratedAt,omitempty"`
}

func commentToDTO(c comment.Comment) commentDTO {
	return commentDTO{
		ID:           c.ID,
		GameID:       c.GameID,
		AuthorName:   c.AuthorName,
		Content:      c.Content,
		CreatedAt:    c.CreatedAt,
		MigratedFrom: c.MigratedFrom,
		MigratedAt:   c.MigratedAt,
	}
}

type gameResultDTO struct {
	Date   string `json:"date"`
	Winner string `json:"winner"`
	Score  string `json:"score"`
}

type playerGameRatingDTO struct {
	GameID    string  `json:"gameId"`
	AvgRating float64 `json:"avgRating"`
	Votes     int     `json:"votes"`
}

type playerTrendDTO struct {
	Name        string                `json:"name"`
	GamesPlayed int                   `json:"gamesPlayed"`
	AvgRating   float64               `json:"avgRating"`
	Trend       []playerGameRatingDTO `json:"trend"`
}

type teamWinsDTO struct {
	White int `json:"white"`
	Dark  int `json:"dark"`
	Ties  int `json:"ties"`
}

type trendsDTO struct {
	TeamWins        teamWinsDTO      `json:"teamWins"`
	GameResults     []gameResultDTO  `json:"gameResults"`
	PlayerTrends    []playerTrendDTO `json:"playerTrends"`
	GameDates       []string         `json:"gameDates"`
	TotalGames      int              `json:"totalGames"`
	GamesWithScores int              `json:"gamesWithScores"`
}

func trendsToDTO(t usecase.Trends) trendsDTO {
	out := trendsDTO{
		TeamWins:        teamWinsDTO{White: t.TeamWins.White, Dark: t.TeamWins.Dark, Ties: t.TeamWins.Ties},
		GameResults:     make([]gameResultDTO, 0, len(t.GameResults)),
		PlayerTrends:    make([]playerTrendDTO, 0, len(t.PlayerTrends)),
		GameDates:       t.GameDates,
		TotalGames:      t.TotalGames,
		GamesWithScores: t.GamesWithScores,
	}
	if out.GameDates == nil {
		out.GameDates = []string{}
	}
	for _, r := range t.GameResults {
		out.GameResults = append(out.GameResults, gameResultDTO{Date: r.Date, Winner: r.Winner, Score: r.Score})
	}
	for _, p := range t.PlayerTrends {
		trend := playerTrendDTO{
			Name:        p.Name,
			GamesPlayed: p.GamesPlayed,
			AvgRating:   p.AvgRating,
			Trend:       make([]playerGameRatingDTO, 0, len(p.Trend)),
		}
		for _, g := range p.Trend {
			trend.Trend = append(trend.Trend, playerGameRatingDTO{GameID: g.GameID, AvgRating: g.AvgRating, Votes: g.Votes})
		}
		out.PlayerTrends = append(out.PlayerTrends, trend)
	}
	return out
}

type playerDTO struct {
	Name            string  `json:"name"`
	Team            string  `json:"team"`
	Rating          float64 `json:"rating"`
	Position        string  `json:"position"`
	Goalkeeper      bool    `json:"goalkeeper"`
	Favorite        bool    `json:"favorite"`
	Paid            bool    `json:"paid"`
	VenmoFullName   string  `json:"venmoFullName,omitempty"`
	WhatsAppName    string  `json:"whatsAppName,omitempty"`
	PhoneNumber     string  `json:"phoneNumber,omitempty"`
	AutoCreated     bool    `json:"autoCreated,omitempty"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	UpdatedAt       string  `json:"updatedAt,omitempty"`
	LastPaymentDate string  `json:"lastPaymentDate,omitempty"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
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

func playersToDTO(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}
	return out
}

type playerListDTO struct {
	Players  []playerDTO `json:"players"`
	Fallback bool        `json:"fallback,omitempty"`
}

type playerSyncDTO struct {
	NewPlayersFound int         `json:"newPlayersFound"`
	PlayersCreated  int         `json:"playersCreated"`
	FailedCount     int         `json:"failedCount"`
	WorkerCount     int         `json:"workerCount"`
	Players         []playerDTO `json:"players"`
}

type autoPopulateDTO struct {
	Player  playerDTO `json:"player"`
	Created bool      `json:"created"`
}

type tokenDTO struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresAt   string `json:"expiresAt"`
}
