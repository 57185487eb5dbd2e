package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/soccernow/internal/domain/signup"
	qb "github.com/riskibarqy/soccernow/internal/platform/querybuilder"
)

const signupsTable = "signups"

var signupColumns = qb.Columns(signupTableModel{})

type SignupRepository struct {
	db *sqlx.DB
}

func NewSignupRepository(db *sqlx.DB) *SignupRepository {
	return &SignupRepository{db: db}
}

func (r *SignupRepository) List(ctx context.Context) ([]signup.Record, error) {
	return r.selectRecords(ctx, qb.Select(signupColumns...).From(signupsTable).OrderBy("date", "id"))
}

func (r *SignupRepository) ListByMoney(ctx context.Context, money float64) ([]signup.Record, error) {
	return r.selectRecords(ctx, qb.Select(signupColumns...).From(signupsTable).
		Where(qb.Eq("money", money)).
		OrderBy("date", "id"))
}

func (r *SignupRepository) GetByID(ctx context.Context, id string) (signup.Record, bool, error) {
	query, args, err := qb.Select(signupColumns...).From(signupsTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return signup.Record{}, false, errors.Wrap(err, "build get signup query")
	}

	var row signupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return signup.Record{}, false, nil
		}
		return signup.Record{}, false, errors.Wrapf(err, "get signup %s", id)
	}
	return row.toDomain(), true, nil
}

func (r *SignupRepository) Upsert(ctx context.Context, record signup.Record) error {
	return r.upsert(ctx, r.db, []signup.Record{record})
}

func (r *SignupRepository) UpsertBatch(ctx context.Context, records []signup.Record) error {
	if len(records) == 0 {
		return nil
	}
	return withTx(ctx, r.db, "signup batch", func(tx *sqlx.Tx) error {
		return r.upsert(ctx, tx, records)
	})
}

func (r *SignupRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom(signupsTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete signup query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete signup %s", id)
	}
	return nil
}

func (r *SignupRepository) upsert(ctx context.Context, exec sqlx.ExecerContext, records []signup.Record) error {
	rows := make([]signupTableModel, 0, len(records))
	for _, rec := range records {
		rows = append(rows, signupRow(rec))
	}
	rows = lastByKey(rows, func(m signupTableModel) string { return m.ID })

	query, args, err := qb.UpsertModels(signupsTable, []string{"id"}, rows)
	if err != nil {
		return errors.Wrap(err, "build upsert signups query")
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert %d signups", len(records))
	}
	return nil
}

func (r *SignupRepository) selectRecords(ctx context.Context, b *qb.SelectBuilder) ([]signup.Record, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select signups query")
	}

	var rows []signupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select signups")
	}

	out := make([]signup.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
