package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/soccernow/internal/domain/player"
	qb "github.com/riskibarqy/soccernow/internal/platform/querybuilder"
)

const playersTable = "players"

var playerColumns = qb.Columns(playerTableModel{})

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns...).From(playersTable).OrderBy("name").ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select players query")
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select players")
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns...).From(playersTable).Where(qb.Eq("name", name)).ToSQL()
	if err != nil {
		return player.Player{}, false, errors.Wrap(err, "build get player query")
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, errors.Wrapf(err, "get player %s", name)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	query, args, err := qb.UpsertModels(playersTable, []string{"name"}, []playerTableModel{playerRow(p)})
	if err != nil {
		return errors.Wrap(err, "build upsert player query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert player %s", p.Name)
	}
	return nil
}

func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []player.Player) error {
	return withTx(ctx, r.db, "player replace", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+playersTable); err != nil {
			return errors.Wrap(err, "clear players")
		}
		if len(players) == 0 {
			return nil
		}

		rows := make([]playerTableModel, 0, len(players))
		for _, p := range players {
			rows = append(rows, playerRow(p))
		}
		rows = lastByKey(rows, func(m playerTableModel) string { return m.Name })
		query, args, err := qb.UpsertModels(playersTable, []string{"name"}, rows)
		if err != nil {
			return errors.Wrap(err, "build insert players query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "insert %d players", len(players))
		}
		return nil
	})
}
