package comment

import "context"

// Repository describes comment persistence.
type Repository interface {
	ListByGame(ctx context.Context, gameID string) ([]Comment, error)
	GetByID(ctx context.Context, id string) (Comment, bool, error)
	Create(ctx context.Context, c Comment) error
	Delete(ctx context.Context, id string) error
	// SaveBatch atomically overwrites every given comment.
	SaveBatch(ctx context.Context, comments []Comment) error
}
