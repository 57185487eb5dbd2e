package firestore

import (
	"context"

	fs "cloud.google.com/go/firestore"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/soccernow/internal/domain/vote"
)

type VoteRepository struct {
	client *fs.Client
}

func NewVoteRepository(client *fs.Client) *VoteRepository {
	return &VoteRepository{client: client}
}

func (r *VoteRepository) List(ctx context.Context) ([]vote.Vote, error) {
	return r.query(ctx, r.client.Collection(collectionVotes).Query)
}

func (r *VoteRepository) ListByGame(ctx context.Context, gameID string) ([]vote.Vote, error) {
	return r.query(ctx, r.client.Collection(collectionVotes).Where("gameId", "==", gameID))
}

func (r *VoteRepository) ListByGameAndVoter(ctx context.Context, gameID, voterID string) ([]vote.Vote, error) {
	q := r.client.Collection(collectionVotes).
		Where("gameId", "==", gameID).
		Where("voterId", "==", voterID)
	return r.query(ctx, q)
}

func (r *VoteRepository) Upsert(ctx context.Context, v vote.Vote) error {
	if _, err := r.client.Collection(collectionVotes).Doc(v.ID).Set(ctx, voteToDoc(v)); err != nil {
		return errors.Wrapf(err, "set vote %s", v.ID)
	}
	return nil
}

func (r *VoteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(collectionVotes).Doc(id).Delete(ctx); err != nil {
		return errors.Wrapf(err, "delete vote %s", id)
	}
	return nil
}

func (r *VoteRepository) Replace(ctx context.Context, removed []string, added []vote.Vote) error {
	col := r.client.Collection(collectionVotes)
	err := r.client.RunTransaction(ctx, func(_ context.Context, tx *fs.Transaction) error {
		for _, id := range removed {
			if err := tx.Delete(col.Doc(id)); err != nil {
				return err
			}
		}
		for _, v := range added {
			if err := tx.Set(col.Doc(v.ID), voteToDoc(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "replace votes removed=%d added=%d", len(removed), len(added))
	}
	return nil
}

func (r *VoteRepository) query(ctx context.Context, q fs.Query) ([]vote.Vote, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "query votes")
	}

	out := make([]vote.Vote, 0, len(docs))
	for _, snap := range docs {
		var doc voteDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrapf(err, "decode vote %s", snap.Ref.ID)
		}
		out = append(out, doc.toDomain(snap.Ref.ID))
	}
	return out, nil
}
