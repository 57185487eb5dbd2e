package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/soccernow/internal/domain/comment"
	"github.com/riskibarqy/soccernow/internal/infrastructure/repository/memory"
	commentmock "github.com/riskibarqy/soccernow/internal/mocks/domain/comment"
	"github.com/riskibarqy/soccernow/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestCommentService_AddAndList(t *testing.T) {
	t.Parallel()

	repo := memory.NewCommentRepository(nil)
	svc := NewCommentService(repo, &sequenceIDs{}, logging.NewNop())

	start := time.Date(2024, time.January, 12, 8, 0, 0, 0, time.UTC)
	for i := range comment.ListLimit + 5 {
		svc.now = fixedNow(start.Add(time.Duration(i) * time.Minute))
		if _, err := svc.Add(context.Background(), AddCommentInput{
			GameID:     "2024-01-11",
			AuthorName: "  Gabe ",
			Content:    fmt.Sprintf(" comment %d ", i),
		}); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	items, err := svc.List(context.Background(), "2024-01-11")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != comment.ListLimit {
		t.Fatalf("expected %d comments, got %d", comment.ListLimit, len(items))
	}
	if items[0].Content != fmt.Sprintf("comment %d", comment.ListLimit+4) {
		t.Fatalf("expected newest first, got %q", items[0].Content)
	}
	if items[0].AuthorName != "Gabe" {
		t.Fatalf("expected trimmed author, got %q", items[0].AuthorName)
	}
}

func TestCommentService_AddValidation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(memory.NewCommentRepository(nil), &sequenceIDs{}, logging.NewNop())
	tests := []AddCommentInput{
		{GameID: "", AuthorName: "a", Content: "b"},
		{GameID: "g", AuthorName: strings.Repeat("a", comment.MaxAuthorNameLength+1), Content: "b"},
		{GameID: "g", AuthorName: "a", Content: strings.Repeat("b", comment.MaxContentLength+1)},
		{GameID: "g", AuthorName: "   ", Content: "b"},
	}
	for i, input := range tests {
		if _, err := svc.Add(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestCommentService_Delete(t *testing.T) {
	t.Parallel()

	repo := memory.NewCommentRepository([]comment.Comment{{ID: "c1", GameID: "g", AuthorName: "a", Content: "b"}})
	svc := NewCommentService(repo, nil, logging.NewNop())

	if err := svc.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "c1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing comment, got %v", err)
	}
}

func TestCommentService_Migrate(t *testing.T) {
	t.Parallel()

	repo := memory.NewCommentRepository([]comment.Comment{
		{ID: "c1", GameID: "2026-01-22", AuthorName: "a", Content: "one"},
		{ID: "c2", GameID: "2026-01-22", AuthorName: "b", Content: "two"},
		{ID: "c3", GameID: "2024-01-11", AuthorName: "c", Content: "three"},
	})
	svc := NewCommentService(repo, nil, logging.NewNop())
	svc.now = fixedNow(time.Date(2026, time.January, 23, 0, 0, 0, 0, time.UTC))

	moved, err := svc.Migrate(context.Background(), MigrateInput{FromGameID: "2026-01-22", ToGameID: "2026-01-15"})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if moved != 2 {
		t.Fatalf("expected two comments moved, got %d", moved)
	}

	items, _ := repo.ListByGame(context.Background(), "2026-01-15")
	if len(items) != 2 {
		t.Fatalf("expected two comments on the target game, got %d", len(items))
	}
	for _, c := range items {
		if c.MigratedFrom != "2026-01-22" || c.MigratedAt != "2026-01-23T00:00:00.000Z" {
			t.Fatalf("unexpected migration stamp: %+v", c)
		}
	}

	if _, err := svc.Migrate(context.Background(), MigrateInput{FromGameID: "2026-01-22", ToGameID: "2026-01-15"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput when nothing to migrate, got %v", err)
	}
}

func TestCommentService_ListStoreFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := commentmock.NewRepository(t)
	repo.
		On("ListByGame", mock.MatchedBy(isContext(ctx)), "g").
		Return(nil, errors.New("deadline exceeded")).
		Once()

	svc := NewCommentService(repo, nil, logging.NewNop())
	if _, err := svc.List(ctx, "g"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
