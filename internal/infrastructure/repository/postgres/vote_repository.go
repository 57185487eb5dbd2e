package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/soccernow/internal/domain/vote"
	qb "github.com/riskibarqy/soccernow/internal/platform/querybuilder"
)

const votesTable = "votes"

var voteColumns = qb.Columns(voteTableModel{})

type VoteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) List(ctx context.Context) ([]vote.Vote, error) {
	return r.selectVotes(ctx, qb.Select(voteColumns...).From(votesTable).OrderBy("id"))
}

func (r *VoteRepository) ListByGame(ctx context.Context, gameID string) ([]vote.Vote, error) {
	return r.selectVotes(ctx, qb.Select(voteColumns...).From(votesTable).
		Where(qb.Eq("game_id", gameID)).
		OrderBy("id"))
}

func (r *VoteRepository) ListByGameAndVoter(ctx context.Context, gameID, voterID string) ([]vote.Vote, error) {
	return r.selectVotes(ctx, qb.Select(voteColumns...).From(votesTable).
		Where(qb.Eq("game_id", gameID), qb.Eq("voter_id", voterID)).
		OrderBy("id"))
}

func (r *VoteRepository) Upsert(ctx context.Context, v vote.Vote) error {
	return r.upsert(ctx, r.db, []vote.Vote{v})
}

func (r *VoteRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, r.db, []string{id})
}

func (r *VoteRepository) Replace(ctx context.Context, removed []string, added []vote.Vote) error {
	return withTx(ctx, r.db, "vote replace", func(tx *sqlx.Tx) error {
		if len(removed) > 0 {
			if err := r.delete(ctx, tx, removed); err != nil {
				return err
			}
		}
		if len(added) > 0 {
			return r.upsert(ctx, tx, added)
		}
		return nil
	})
}

func (r *VoteRepository) upsert(ctx context.Context, exec sqlx.ExecerContext, votes []vote.Vote) error {
	rows := make([]voteTableModel, 0, len(votes))
	for _, v := range votes {
		rows = append(rows, voteRow(v))
	}
	rows = lastByKey(rows, func(m voteTableModel) string { return m.ID })
	query, args, err := qb.UpsertModels(votesTable, []string{"id"}, rows)
	if err != nil {
		return errors.Wrap(err, "build upsert votes query")
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert %d votes", len(votes))
	}
	return nil
}

func (r *VoteRepository) delete(ctx context.Context, exec sqlx.ExecerContext, ids []string) error {
	query, args, err := qb.DeleteFrom(votesTable).Where(qb.In("id", ids)).ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete votes query")
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete %d votes", len(ids))
	}
	return nil
}

func (r *VoteRepository) selectVotes(ctx context.Context, b *qb.SelectBuilder) ([]vote.Vote, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select votes query")
	}

	var rows []voteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select votes")
	}

	out := make([]vote.Vote, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
