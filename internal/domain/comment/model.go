package comment

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxAuthorNameLength = 50
	MaxContentLength    = 500
	// ListLimit caps the comments returned for one game.
	ListLimit = 50
)

type Comment struct {
	ID           string
	GameID       string
	AuthorName   string
	Content      string
	CreatedAt    string
	MigratedFrom string
	MigratedAt   string
}

// Validate checks the submitted fields before trimming is applied, then
// requires the trimmed values to be non-empty.
func Validate(gameID, authorName, content string) error {
	if gameID == "" || authorName == "" || content == "" {
		return fmt.Errorf("gameId, authorName and content are required")
	}
	if utf8.RuneCountInString(authorName) > MaxAuthorNameLength {
		return fmt.Errorf("name must be %d characters or less", MaxAuthorNameLength)
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return fmt.Errorf("comment must be %d characters or less", MaxContentLength)
	}
	if strings.TrimSpace(authorName) == "" || strings.TrimSpace(content) == "" {
		return fmt.Errorf("name and comment cannot be empty")
	}
	return nil
}
