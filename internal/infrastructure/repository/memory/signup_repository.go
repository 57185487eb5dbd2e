package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

type SignupRepository struct {
	mu      sync.RWMutex
	order   []string
	records map[string]signup.Record
}

func NewSignupRepository(seed []signup.Record) *SignupRepository {
	r := &SignupRepository{records: make(map[string]signup.Record, len(seed))}
	for _, rec := range seed {
		r.put(rec)
	}
	return r
}

func (r *SignupRepository) List(_ context.Context) ([]signup.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]signup.Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out, nil
}

func (r *SignupRepository) ListByMoney(_ context.Context, money float64) ([]signup.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]signup.Record, 0, len(r.order))
	for _, id := range r.order {
		if rec := r.records[id]; rec.Money == money {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *SignupRepository) GetByID(_ context.Context, id string) (signup.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	return rec, ok, nil
}

func (r *SignupRepository) Upsert(_ context.Context, record signup.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(record)
	return nil
}

func (r *SignupRepository) UpsertBatch(_ context.Context, records []signup.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		r.put(rec)
	}
	return nil
}

func (r *SignupRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return nil
	}
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *SignupRepository) put(rec signup.Record) {
	if _, ok := r.records[rec.ID]; !ok {
		r.order = append(r.order, rec.ID)
	}
	r.records[rec.ID] = rec
}
