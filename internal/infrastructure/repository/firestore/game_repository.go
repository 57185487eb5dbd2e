package firestore

import (
	"context"

	fs "cloud.google.com/go/firestore"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/soccernow/internal/domain/game"
)

type GameRepository struct {
	client *fs.Client
}

func NewGameRepository(client *fs.Client) *GameRepository {
	return &GameRepository{client: client}
}

func (r *GameRepository) GetByID(ctx context.Context, gameDate string) (game.Game, bool, error) {
	doc, ok, err := getOne[gameDoc](ctx, r.client.Collection(collectionGames).Doc(gameDate))
	if err != nil || !ok {
		return game.Game{}, ok, err
	}
	return doc.toDomain(gameDate), true, nil
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	return r.query(ctx, r.client.Collection(collectionGames).OrderBy("gameDate", fs.Desc))
}

func (r *GameRepository) ListRecent(ctx context.Context, limit int) ([]game.Game, error) {
	q := r.client.Collection(collectionGames).OrderBy("gameDate", fs.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return r.query(ctx, q)
}

// Create relies on the document create precondition, so two racing
// archivers cannot both write the same Thursday.
func (r *GameRepository) Create(ctx context.Context, g game.Game) error {
	_, err := r.client.Collection(collectionGames).Doc(g.GameDate).Create(ctx, gameToDoc(g))
	if err != nil {
		if isAlreadyExists(err) {
			return game.ErrAlreadyExists
		}
		return errors.Wrapf(err, "create game %s", g.GameDate)
	}
	return nil
}

func (r *GameRepository) UpdateScore(ctx context.Context, gameDate string, score game.FinalScore) error {
	_, err := r.client.Collection(collectionGames).Doc(gameDate).Update(ctx, []fs.Update{{
		Path: "finalScore",
		Value: finalScoreDoc{
			White:     score.White,
			Dark:      score.Dark,
			UpdatedAt: score.UpdatedAt,
		},
	}})
	if err != nil {
		if isNotFound(err) {
			return game.ErrNotFound
		}
		return errors.Wrapf(err, "update score for game %s", gameDate)
	}
	return nil
}

func (r *GameRepository) query(ctx context.Context, q fs.Query) ([]game.Game, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "query games")
	}

	out := make([]game.Game, 0, len(docs))
	for _, snap := range docs {
		var doc gameDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrapf(err, "decode game %s", snap.Ref.ID)
		}
		out = append(out, doc.toDomain(snap.Ref.ID))
	}
	return out, nil
}
