package post

import (
	"context"

	"github.com/google/uuid"
)

// Service covers the post aggregate and its comment sub-resource.
// Every comment operation fails with ErrPostNotFound when the parent
// post is absent.
type Service interface {
	List(ctx context.Context, page, perPage int) (*ListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PostView, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]PostView, error)

	Create(ctx context.Context, req CreatePostRequest, coverURL *string) (*PostView, error)
	Update(ctx context.Context, id uuid.UUID, req UpdatePostRequest) (*BlogPost, error)
	ReplaceCover(ctx context.Context, id uuid.UUID, coverURL *string) (*BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListComments(ctx context.Context, postID uuid.UUID) ([]CommentView, error)
	GetComment(ctx context.Context, postID, commentID uuid.UUID) (*CommentView, error)
	AddComment(ctx context.Context, postID uuid.UUID, req AddCommentRequest) (*PostView, error)
	EditComment(ctx context.Context, postID, commentID uuid.UUID, req EditCommentRequest) (*PostView, error)
	RemoveComment(ctx context.Context, postID, commentID uuid.UUID) (*PostView, error)
}
