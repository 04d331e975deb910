package post

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists the BlogPost aggregate. Update rewrites the whole
// row, comments included: concurrent writers to the same post are
// last-write-wins at the document level.
type Repository interface {
	Create(ctx context.Context, p *BlogPost) error

	// GetByID returns the raw aggregate for mutation.
	GetByID(ctx context.Context, id uuid.UUID) (*BlogPost, error)

	// GetView returns the aggregate with author and comment-user
	// projections resolved.
	GetView(ctx context.Context, id uuid.UUID) (*PostView, error)

	// List returns one page ordered by creation time descending, plus
	// the total number of posts.
	List(ctx context.Context, offset, limit int) ([]PostView, int, error)

	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]PostView, error)

	Update(ctx context.Context, p *BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
