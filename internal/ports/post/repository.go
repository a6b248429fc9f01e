package post

import (
	"context"

	"besafe/internal/core/post"
)

// PostRepository is the outbound port for storing and retrieving posts.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	// FindAll returns posts ordered by created_at descending. A non-empty
	// filtroSite restricts the result to posts whose site_name contains it,
	// case-insensitively.
	FindAll(ctx context.Context, filtroSite string) ([]*post.Post, error)
	// UpdateContent overwrites site_name, description and category only.
	UpdateContent(ctx context.Context, id, siteName, description, category string) (*post.Post, error)
	// SaveVotes persists the vote fields with a compare-and-swap on
	// p.Version. It reports false when another writer got there first.
	SaveVotes(ctx context.Context, p *post.Post) (bool, error)
	Delete(ctx context.Context, id string) error
}

// PostCache is the outbound port for the listing cache. A (nil, nil) result
// from GetList is a miss.
type PostCache interface {
	GetList(ctx context.Context) ([]*PostDTO, error)
	SetList(ctx context.Context, posts []*PostDTO) error
	Invalidate(ctx context.Context) error
}

// DTOs for the use cases.
type PostDTO struct {
	ID             string   `json:"id"`
	SiteName       string   `json:"siteName"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	AuthorUsername string   `json:"authorUsername"`
	Likes          int      `json:"likes"`
	Dislikes       int      `json:"dislikes"`
	LikedUsers     []string `json:"likedUsers"`
	DislikedUsers  []string `json:"dislikedUsers"`
	CreatedAt      string   `json:"createdAt"`
}

// CriarPostInput carries the create payload. AuthorUsername stays untyped so
// the service can reject JSON bodies where it is not a plain string.
type CriarPostInput struct {
	SiteName       string `json:"siteName"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	AuthorUsername any    `json:"authorUsername"`
}

// AtualizarPostInput carries the content-only patch for updates. Vote fields
// are deliberately absent: an update can never touch them.
type AtualizarPostInput struct {
	SiteName    string `json:"siteName"`
	Description string `json:"description"`
	Category    string `json:"category"`
}
