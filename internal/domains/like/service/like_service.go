package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/like"
)

type likeService struct {
	repo  like.Repository
	posts like.PostChecker
}

func NewLikeService(repo like.Repository, posts like.PostChecker) like.Service {
	return &likeService{
		repo:  repo,
		posts: posts,
	}
}

func (s *likeService) ensurePost(ctx context.Context, postID uuid.UUID) error {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return like.ErrPostNotFound
	}
	return nil
}

func (s *likeService) Toggle(ctx context.Context, postID, userID uuid.UUID) (*like.ToggleResult, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	inserted, err := s.repo.Insert(ctx, &like.Like{
		ID:        uuid.New(),
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	status := like.StatusLiked
	message := "post liked"
	if !inserted {
		// The like was already there: this toggle removes it. Losing
		// the delete race to another request still lands on "unliked".
		if _, err := s.repo.Remove(ctx, postID, userID); err != nil {
			return nil, err
		}
		status = like.StatusUnliked
		message = "post unliked"
	}

	count, err := s.repo.Count(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &like.ToggleResult{
		Status:    status,
		Message:   message,
		LikeCount: count,
	}, nil
}

func (s *likeService) Check(ctx context.Context, postID, userID uuid.UUID) (*like.CheckResult, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.repo.Exists(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	return &like.CheckResult{Liked: liked}, nil
}

func (s *likeService) ListLikers(ctx context.Context, postID uuid.UUID) (*like.LikersResponse, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	views, err := s.repo.ListLikers(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &like.LikersResponse{
		Count: len(views),
		Data:  views,
	}, nil
}
