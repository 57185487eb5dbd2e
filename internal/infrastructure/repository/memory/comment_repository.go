package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/soccernow/internal/domain/comment"
)

type CommentRepository struct {
	mu       sync.RWMutex
	comments map[string]comment.Comment
}

func NewCommentRepository(seed []comment.Comment) *CommentRepository {
	comments := make(map[string]comment.Comment, len(seed))
	for _, c := range seed {
		comments[c.ID] = c
	}
	return &CommentRepository{comments: comments}
}

func (r *CommentRepository) ListByGame(_ context.Context, gameID string) ([]comment.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]comment.Comment, 0)
	for _, c := range r.comments {
		if c.GameID == gameID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CommentRepository) GetByID(_ context.Context, id string) (comment.Comment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	return c, ok, nil
}

func (r *CommentRepository) Create(_ context.Context, c comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comments[c.ID]; exists {
		return fmt.Errorf("comment %s already exists", c.ID)
	}
	r.comments[c.ID] = c
	return nil
}

func (r *CommentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.comments, id)
	return nil
}

func (r *CommentRepository) SaveBatch(_ context.Context, comments []comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range comments {
		r.comments[c.ID] = c
	}
	return nil
}
