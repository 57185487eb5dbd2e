package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/comment"
	idgen "github.com/riskibarqy/soccernow/internal/platform/id"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
)

type AddCommentInput struct {
	GameID     string
	AuthorName string
	Content    string
}

type CommentService struct {
	commentRepo comment.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewCommentService(commentRepo comment.Repository, idGen idgen.Generator, logger *logging.Logger) *CommentService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewUUIDGenerator()
	}

	return &CommentService{
		commentRepo: commentRepo,
		idGen:       idGen,
		logger:      logger.Named("comment"),
		now:         time.Now,
	}
}

// List returns the newest comments of a game first.
func (s *CommentService) List(ctx context.Context, gameID string) ([]comment.Comment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CommentService.List")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	items, err := s.commentRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("%w: list comments: %v", ErrDependencyUnavailable, err)
	}
	slices.SortStableFunc(items, func(a, b comment.Comment) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	if len(items) > comment.ListLimit {
		items = items[:comment.ListLimit]
	}
	return items, nil
}

func (s *CommentService) Add(ctx context.Context, input AddCommentInput) (comment.Comment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CommentService.Add")
	defer span.End()

	if err := comment.Validate(input.GameID, input.AuthorName, input.Content); err != nil {
		return comment.Comment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return comment.Comment{}, fmt.Errorf("generate comment id: %w", err)
	}
	c := comment.Comment{
		ID:         id,
		GameID:     strings.TrimSpace(input.GameID),
		AuthorName: strings.TrimSpace(input.AuthorName),
		Content:    strings.TrimSpace(input.Content),
		CreatedAt:  isoTimestamp(s.now()),
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return comment.Comment{}, fmt.Errorf("%w: create comment: %v", ErrDependencyUnavailable, err)
	}
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CommentService.Delete")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: comment id is required", ErrInvalidInput)
	}

	_, exists, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: get comment: %v", ErrDependencyUnavailable, err)
	}
	if !exists {
		return fmt.Errorf("%w: comment %s", ErrNotFound, id)
	}
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete comment: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "comment deleted", "id", id)
	return nil
}

// Migrate moves every comment of one game onto another game id atomically.
func (s *CommentService) Migrate(ctx context.Context, input MigrateInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CommentService.Migrate")
	defer span.End()

	from, to, err := normalizeMigrateInput(input)
	if err != nil {
		return 0, err
	}

	items, err := s.commentRepo.ListByGame(ctx, from)
	if err != nil {
		return 0, fmt.Errorf("%w: list comments: %v", ErrDependencyUnavailable, err)
	}
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: no comments found for game %s", ErrInvalidInput, from)
	}

	stamp := isoTimestamp(s.now())
	for i := range items {
		items[i].GameID = to
		items[i].MigratedFrom = from
		items[i].MigratedAt = stamp
	}
	if err := s.commentRepo.SaveBatch(ctx, items); err != nil {
		return 0, fmt.Errorf("%w: migrate comments: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "comments migrated", "from", from, "to", to, "count", len(items))
	return len(items), nil
}
