package like

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the like ledger. Insert is the atomic half of the
// toggle: it reports whether a row was actually created, so a
// concurrent duplicate insert degrades into the remove path instead of
// a second like.
type Repository interface {
	// Insert adds the like unless one already exists for its
	// (PostID, UserID) pair. Returns true when a new row was written.
	Insert(ctx context.Context, l *Like) (bool, error)

	// Remove deletes the user's like on the post if present. Returns
	// true when a row was deleted.
	Remove(ctx context.Context, postID, userID uuid.UUID) (bool, error)

	Exists(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	Count(ctx context.Context, postID uuid.UUID) (int, error)

	// ListLikers returns every like on the post with its user
	// projection resolved, oldest first. Likes from deleted accounts
	// are kept with a nil user.
	ListLikers(ctx context.Context, postID uuid.UUID) ([]LikeView, error)
}
