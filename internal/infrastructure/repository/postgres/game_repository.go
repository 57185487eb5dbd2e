package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/soccernow/internal/domain/game"
	qb "github.com/riskibarqy/soccernow/internal/platform/querybuilder"
)

const gamesTable = "games"

var gameColumns = qb.Columns(gameTableModel{})

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, gameDate string) (game.Game, bool, error) {
	query, args, err := qb.Select(gameColumns...).From(gamesTable).Where(qb.Eq("game_date", gameDate)).ToSQL()
	if err != nil {
		return game.Game{}, false, errors.Wrap(err, "build get game query")
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, errors.Wrapf(err, "get game %s", gameDate)
	}
	return row.toDomain(), true, nil
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	return r.ListRecent(ctx, 0)
}

func (r *GameRepository) ListRecent(ctx context.Context, limit int) ([]game.Game, error) {
	query, args, err := qb.Select(gameColumns...).From(gamesTable).
		OrderBy("game_date DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select games query")
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select games")
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Create inserts without conflict handling so a duplicate game_date
// surfaces as a unique violation.
func (r *GameRepository) Create(ctx context.Context, g game.Game) error {
	query, args, err := qb.InsertModel(gamesTable, nil, gameRow(g))
	if err != nil {
		return errors.Wrap(err, "build insert game query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return game.ErrAlreadyExists
		}
		return errors.Wrapf(err, "insert game %s", g.GameDate)
	}
	return nil
}

func (r *GameRepository) UpdateScore(ctx context.Context, gameDate string, score game.FinalScore) error {
	query, args, err := qb.Update(gamesTable).
		Set("final_score", jsonb[*finalScoreJSON]{V: scoreToJSON(&score)}).
		Where(qb.Eq("game_date", gameDate)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update score query")
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "update score for game %s", gameDate)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "rows affected for game %s", gameDate)
	}
	if affected == 0 {
		return game.ErrNotFound
	}
	return nil
}
