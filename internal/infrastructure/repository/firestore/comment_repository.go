package firestore

import (
	"context"

	fs "cloud.google.com/go/firestore"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/soccernow/internal/domain/comment"
)

type CommentRepository struct {
	client *fs.Client
}

func NewCommentRepository(client *fs.Client) *CommentRepository {
	return &CommentRepository{client: client}
}

func (r *CommentRepository) ListByGame(ctx context.Context, gameID string) ([]comment.Comment, error) {
	docs, err := r.client.Collection(collectionComments).Where("gameId", "==", gameID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "query comments for game %s", gameID)
	}

	out := make([]comment.Comment, 0, len(docs))
	for _, snap := range docs {
		var doc commentDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrapf(err, "decode comment %s", snap.Ref.ID)
		}
		out = append(out, doc.toDomain(snap.Ref.ID))
	}
	return out, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (comment.Comment, bool, error) {
	doc, ok, err := getOne[commentDoc](ctx, r.client.Collection(collectionComments).Doc(id))
	if err != nil || !ok {
		return comment.Comment{}, ok, err
	}
	return doc.toDomain(id), true, nil
}

func (r *CommentRepository) Create(ctx context.Context, c comment.Comment) error {
	if _, err := r.client.Collection(collectionComments).Doc(c.ID).Create(ctx, commentToDoc(c)); err != nil {
		return errors.Wrapf(err, "create comment %s", c.ID)
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(collectionComments).Doc(id).Delete(ctx); err != nil {
		return errors.Wrapf(err, "delete comment %s", id)
	}
	return nil
}

func (r *CommentRepository) SaveBatch(ctx context.Context, comments []comment.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	col := r.client.Collection(collectionComments)
	err := r.client.RunTransaction(ctx, func(_ context.Context, tx *fs.Transaction) error {
		for _, c := range comments {
			if err := tx.Set(col.Doc(c.ID), commentToDoc(c)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "batch set %d comments", len(comments))
	}
	return nil
}
