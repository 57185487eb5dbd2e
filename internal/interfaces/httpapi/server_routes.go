package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, limiter *RateLimiter) {
	mux.HandleFunc("GET /v1/roster", handler.GetRoster)
	mux.HandleFunc("GET /v1/roster/odds", handler.GetOdds)

	mux.HandleFunc("GET /v1/games", handler.ListGames)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
	mux.HandleFunc("GET /v1/games/{gameID}/ratings", handler.GetGameRatings)
	mux.HandleFunc("GET /v1/games/{gameID}/my-ratings", handler.GetMyRatings)
	mux.HandleFunc("DELETE /v1/games/{gameID}/votes/{playerName}", handler.RemoveVote)
	mux.HandleFunc("GET /v1/games/{gameID}/comments", handler.ListComments)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/trends", handler.GetTrends)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)

	mux.Handle("POST /v1/signups", RateLimit(limiter, http.HandlerFunc(handler.SubmitSignup)))
	mux.Handle("POST /v1/games/{gameID}/votes", RateLimit(limiter, http.HandlerFunc(handler.SubmitVote)))
	mux.Handle("POST /v1/games/{gameID}/comments", RateLimit(limiter, http.HandlerFunc(handler.AddComment)))
	mux.Handle("POST /v1/auth/token", RateLimit(limiter, http.HandlerFunc(handler.IssueToken)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAdminSignupRoutes(mux, handler, verifier)
	registerAdminGameRoutes(mux, handler, verifier)
	registerAdminFeedbackRoutes(mux, handler, verifier)
	registerAdminPlayerRoutes(mux, handler, verifier)
}

func registerAdminSignupRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/signups/batch", RequireAuth(verifier, http.HandlerFunc(handler.SubmitSignupBatch)))
	mux.Handle("DELETE /v1/signups/{signupID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteSignup)))
}

func registerAdminGameRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/games", RequireAuth(verifier, http.HandlerFunc(handler.CreateGame)))
	mux.Handle("POST /v1/games/archive-current", RequireAuth(verifier, http.HandlerFunc(handler.ArchiveCurrentGame)))
	mux.Handle("PATCH /v1/games/{gameID}/archive", RequireAuth(verifier, http.HandlerFunc(handler.ArchivePastGame)))
	mux.Handle("PATCH /v1/games/{gameID}/score", RequireAuth(verifier, http.HandlerFunc(handler.UpdateGameScore)))
}

func registerAdminFeedbackRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PATCH /v1/votes/migrate", RequireAuth(verifier, http.HandlerFunc(handler.MigrateVotes)))
	mux.Handle("PATCH /v1/comments/migrate", RequireAuth(verifier, http.HandlerFunc(handler.MigrateComments)))
	mux.Handle("DELETE /v1/comments/{commentID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteComment)))
}

func registerAdminPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.ReplacePlayers)))
	mux.Handle("POST /v1/players/sync", RequireAuth(verifier, http.HandlerFunc(handler.SyncPlayers)))
	mux.Handle("POST /v1/players/auto-populate", RequireAuth(verifier, http.HandlerFunc(handler.AutoPopulatePlayer)))
}
