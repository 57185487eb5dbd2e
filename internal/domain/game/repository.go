package game

import "context"

// Repository describes archived game persistence.
type Repository interface {
	GetByID(ctx context.Context, gameDate string) (Game, bool, error)
	List(ctx context.Context) ([]Game, error)
	// ListRecent returns at most limit games ordered by gameDate descending.
	ListRecent(ctx context.Context, limit int) ([]Game, error)
	// Create stores g only if no game exists for g.GameDate, else ErrAlreadyExists.
	Create(ctx context.Context, g Game) error
	// UpdateScore sets the final score, or returns ErrNotFound.
	UpdateScore(ctx context.Context, gameDate string, score FinalScore) error
}
