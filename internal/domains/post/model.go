package post

import (
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
)

// ReadTime is the structured estimate shown on every post.
type ReadTime struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// Comment lives only inside its parent post's aggregate. The slice
// order on BlogPost is insertion order and is preserved across edits
// and removals of other comments.
type Comment struct {
	ID     uuid.UUID `json:"id"`
	Text   string    `json:"text"`
	UserID uuid.UUID `json:"user"`
	Date   time.Time `json:"date"`
}

// BlogPost is the stored aggregate: the post row plus its embedded
// comments, read and rewritten as a unit.
type BlogPost struct {
	ID        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Cover     *string   `json:"cover"`
	ReadTime  ReadTime  `json:"readTime"`
	AuthorID  uuid.UUID `json:"author"`
	Content   string    `json:"content"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentView is a comment with the commenting user's public fields
// resolved. User is nil when the account has since been deleted
// (dangling references are tolerated).
type CommentView struct {
	ID   uuid.UUID             `json:"id"`
	Text string                `json:"text"`
	User *author.PublicProfile `json:"user"`
	Date time.Time             `json:"date"`
}

// PostView is the read model: the aggregate with author and comment
// users projected to their public subset.
type PostView struct {
	ID        uuid.UUID             `json:"id"`
	Category  string                `json:"category"`
	Title     string                `json:"title"`
	Cover     *string               `json:"cover"`
	ReadTime  ReadTime              `json:"readTime"`
	Author    *author.PublicProfile `json:"author"`
	Content   string                `json:"content"`
	Comments  []CommentView         `json:"comments"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}
