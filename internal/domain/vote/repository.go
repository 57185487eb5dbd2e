package vote

import "context"

// Repository describes vote persistence. Votes are keyed by ID.
type Repository interface {
	List(ctx context.Context) ([]Vote, error)
	ListByGame(ctx context.Context, gameID string) ([]Vote, error)
	ListByGameAndVoter(ctx context.Context, gameID, voterID string) ([]Vote, error)
	Upsert(ctx context.Context, v Vote) error
	Delete(ctx context.Context, id string) error
	// Replace atomically deletes the removed ids and writes the added votes.
	Replace(ctx context.Context, removed []string, added []Vote) error
}
