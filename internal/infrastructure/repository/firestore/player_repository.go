package firestore

import (
	"context"
	"sort"

	fs "cloud.google.com/go/firestore"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/soccernow/internal/domain/player"
)

// PlayerRepository keys player documents by name.
type PlayerRepository struct {
	client *fs.Client
}

func NewPlayerRepository(client *fs.Client) *PlayerRepository {
	return &PlayerRepository{client: client}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	docs, err := r.client.Collection(collectionPlayers).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "query players")
	}

	out := make([]player.Player, 0, len(docs))
	for _, snap := range docs {
		var doc playerDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrapf(err, "decode player %s", snap.Ref.ID)
		}
		out = append(out, doc.toDomain(snap.Ref.ID))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	doc, ok, err := getOne[playerDoc](ctx, r.client.Collection(collectionPlayers).Doc(name))
	if err != nil || !ok {
		return player.Player{}, ok, err
	}
	return doc.toDomain(name), true, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	if _, err := r.client.Collection(collectionPlayers).Doc(p.Name).Set(ctx, playerToDoc(p)); err != nil {
		return errors.Wrapf(err, "set player %s", p.Name)
	}
	return nil
}

// ReplaceAll deletes every stored player and writes the given set in one transaction.
func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []player.Player) error {
	col := r.client.Collection(collectionPlayers)
	err := r.client.RunTransaction(ctx, func(_ context.Context, tx *fs.Transaction) error {
		existing, err := tx.Documents(col).GetAll()
		if err != nil {
			return err
		}

		keep := make(map[string]struct{}, len(players))
		for _, p := range players {
			keep[p.Name] = struct{}{}
		}
		for _, snap := range existing {
			if _, ok := keep[snap.Ref.ID]; ok {
				continue
			}
			if err := tx.Delete(snap.Ref); err != nil {
				return err
			}
		}
		for _, p := range players {
			if err := tx.Set(col.Doc(p.Name), playerToDoc(p)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "replace %d players", len(players))
	}
	return nil
}
