package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Media enumerates snippet sources. The literals are stored as-is in the
// media_enum database column and serialized as-is in JSON.
type Media string

const (
	MediaBlog    Media = "Blog"
	MediaBook    Media = "Book"
	MediaNews    Media = "News"
	MediaTwitter Media = "Twitter"
	MediaVideo   Media = "Video"
	MediaWebsite Media = "Website"
)

// ParseMedia checks s against the declared media kinds.
func ParseMedia(s string) (Media, error) {
	switch m := Media(s); m {
	case MediaBlog, MediaBook, MediaNews, MediaTwitter, MediaVideo, MediaWebsite:
		return m, nil
	default:
		return "", fmt.Errorf("unknown media %q", s)
	}
}

// SnippetStore defines persistence operations for snippets and their
// term/author associations.
type SnippetStore interface {
	Create(ctx context.Context, snippet Snippet, terms, existingAuthors []uuid.UUID, newAuthors []string) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, text string, media Media, link *string, terms, existingAuthors []uuid.UUID, newAuthors []string) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Search(ctx context.Context, termID *uuid.UUID, limit, offset *int64) ([]SnippetWithRelated, error)
	Count(ctx context.Context, termID *uuid.UUID, pageSize int64) (int64, error)
	MediaStats(ctx context.Context) ([]MediaStat, error)
}

// Snippet represents a curated quote or media reference.
type Snippet struct {
	ID        uuid.UUID
	Text      string
	Media     Media
	Link      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSnippet builds a snippet with a fresh id and timestamps.
func NewSnippet(text string, media Media, link *string) Snippet {
	now := time.Now()
	return Snippet{
		ID:        uuid.New(),
		Text:      text,
		Media:     media,
		Link:      link,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NamedRef is an associated term or author reduced to id and name.
type NamedRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SnippetWithRelated is a snippet joined with its associated terms and
// authors, deduplicated by id.
type SnippetWithRelated struct {
	ID      uuid.UUID
	Text    string
	Media   Media
	Link    *string
	Terms   []NamedRef
	Authors []NamedRef
}

// MediaStat is the snippet count for one media kind.
type MediaStat struct {
	Media Media
	Count int64
}
