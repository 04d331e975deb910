package like

import (
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
)

// Like is one row in the ledger. The (PostID, UserID) pair is unique:
// a user holds at most one like per post.
type Like struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post"`
	UserID    uuid.UUID `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToggleStatus is what a toggle call settled on.
type ToggleStatus string

const (
	StatusLiked   ToggleStatus = "liked"
	StatusUnliked ToggleStatus = "unliked"
)

// ToggleResult reports the outcome plus the post's fresh count.
type ToggleResult struct {
	Status    ToggleStatus `json:"status"`
	Message   string       `json:"message"`
	LikeCount int          `json:"likeCount"`
}

// CheckResult answers "has this user liked this post".
type CheckResult struct {
	Liked bool `json:"liked"`
}

// LikeView is a ledger row with the liking user projected to their
// public fields. User is nil when the account has since been deleted;
// the like itself still stands.
type LikeView struct {
	ID        uuid.UUID             `json:"id"`
	PostID    uuid.UUID             `json:"post"`
	User      *author.PublicProfile `json:"user"`
	CreatedAt time.Time             `json:"createdAt"`
}

// LikersResponse lists who liked a post.
type LikersResponse struct {
	Count int        `json:"count"`
	Data  []LikeView `json:"data"`
}
