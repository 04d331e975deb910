package like

import (
	"context"

	"github.com/google/uuid"
)

// PostChecker is the slice of the post repository the like service
// needs: existence checks for 404s on unknown posts.
type PostChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service interface {
	// Toggle flips the user's like on the post: absent becomes present
	// and present becomes absent, atomically under concurrency.
	Toggle(ctx context.Context, postID, userID uuid.UUID) (*ToggleResult, error)

	Check(ctx context.Context, postID, userID uuid.UUID) (*CheckResult, error)
	ListLikers(ctx context.Context, postID uuid.UUID) (*LikersResponse, error)
}
