package signup

import "context"

// Repository describes sign-up persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Record, error)
	ListByMoney(ctx context.Context, money float64) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, bool, error)
	Upsert(ctx context.Context, record Record) error
	UpsertBatch(ctx context.Context, records []Record) error
	Delete(ctx context.Context, id string) error
}
