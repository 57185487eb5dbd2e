package firestore

import (
	"context"

	fs "cloud.google.com/go/firestore"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
)

type SignupRepository struct {
	client *fs.Client
}

func NewSignupRepository(client *fs.Client) *SignupRepository {
	return &SignupRepository{client: client}
}

func (r *SignupRepository) List(ctx context.Context) ([]signup.Record, error) {
	return r.query(ctx, r.client.Collection(collectionSignups).Query)
}

func (r *SignupRepository) ListByMoney(ctx context.Context, money float64) ([]signup.Record, error) {
	return r.query(ctx, r.client.Collection(collectionSignups).Where("money", "==", money))
}

func (r *SignupRepository) GetByID(ctx context.Context, id string) (signup.Record, bool, error) {
	doc, ok, err := getOne[signupDoc](ctx, r.client.Collection(collectionSignups).Doc(id))
	if err != nil || !ok {
		return signup.Record{}, ok, err
	}
	return doc.toDomain(id), true, nil
}

func (r *SignupRepository) Upsert(ctx context.Context, record signup.Record) error {
	if _, err := r.client.Collection(collectionSignups).Doc(record.ID).Set(ctx, signupToDoc(record)); err != nil {
		return errors.Wrapf(err, "set signup %s", record.ID)
	}
	return nil
}

func (r *SignupRepository) UpsertBatch(ctx context.Context, records []signup.Record) error {
	if len(records) == 0 {
		return nil
	}

	col := r.client.Collection(collectionSignups)
	err := r.client.RunTransaction(ctx, func(_ context.Context, tx *fs.Transaction) error {
		for _, rec := range records {
			if err := tx.Set(col.Doc(rec.ID), signupToDoc(rec)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "batch set %d signups", len(records))
	}
	return nil
}

func (r *SignupRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(collectionSignups).Doc(id).Delete(ctx); err != nil {
		return errors.Wrapf(err, "delete signup %s", id)
	}
	return nil
}

func (r *SignupRepository) query(ctx context.Context, q fs.Query) ([]signup.Record, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "query signups")
	}

	out := make([]signup.Record, 0, len(docs))
	for _, snap := range docs {
		var doc signupDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrapf(err, "decode signup %s", snap.Ref.ID)
		}
		out = append(out, doc.toDomain(snap.Ref.ID))
	}
	return out, nil
}
