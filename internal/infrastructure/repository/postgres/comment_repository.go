package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/soccernow/internal/domain/comment"
	qb "github.com/riskibarqy/soccernow/internal/platform/querybuilder"
)

const commentsTable = "comments"

var commentColumns = qb.Columns(commentTableModel{})

type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) ListByGame(ctx context.Context, gameID string) ([]comment.Comment, error) {
	query, args, err := qb.Select(commentColumns...).From(commentsTable).
		Where(qb.Eq("game_id", gameID)).
		OrderBy("created_at DESC").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select comments query")
	}

	var rows []commentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrapf(err, "select comments for game %s", gameID)
	}

	out := make([]comment.Comment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (comment.Comment, bool, error) {
	query, args, err := qb.Select(commentColumns...).From(commentsTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return comment.Comment{}, false, errors.Wrap(err, "build get comment query")
	}

	var row commentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return comment.Comment{}, false, nil
		}
		return comment.Comment{}, false, errors.Wrapf(err, "get comment %s", id)
	}
	return row.toDomain(), true, nil
}

func (r *CommentRepository) Create(ctx context.Context, c comment.Comment) error {
	query, args, err := qb.InsertModel(commentsTable, nil, commentRow(c))
	if err != nil {
		return errors.Wrap(err, "build insert comment query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "insert comment %s", c.ID)
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom(commentsTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete comment query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete comment %s", id)
	}
	return nil
}

func (r *CommentRepository) SaveBatch(ctx context.Context, comments []comment.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	rows := make([]commentTableModel, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, commentRow(c))
	}
	rows = lastByKey(rows, func(m commentTableModel) string { return m.ID })
	query, args, err := qb.UpsertModels(commentsTable, []string{"id"}, rows)
	if err != nil {
		return errors.Wrap(err, "build upsert comments query")
	}

	return withTx(ctx, r.db, "comment batch", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "upsert %d comments", len(comments))
		}
		return nil
	})
}
