package player

import "context"

// Repository describes player directory persistence. Players are keyed by name.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByName(ctx context.Context, name string) (Player, bool, error)
	Upsert(ctx context.Context, p Player) error
	ReplaceAll(ctx context.Context, players []Player) error
}
