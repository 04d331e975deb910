package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/post"
)

const (
	defaultPerPage = 9
	maxPerPage     = 9
)

type postService struct {
	repo post.Repository
}

func NewPostService(repo post.Repository) post.Service {
	return &postService{repo: repo}
}

// clampPaging normalises the page window: page defaults to 1, perPage
// defaults to 9 and is capped at 9 no matter what the caller asks for.
func clampPaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func (s *postService) List(ctx context.Context, page, perPage int) (*post.ListResponse, error) {
	page, perPage = clampPaging(page, perPage)
	offset := (page - 1) * perPage

	views, total, err := s.repo.List(ctx, offset, perPage)
	if err != nil {
		return nil, err
	}

	totalPages := (total + perPage - 1) / perPage

	return &post.ListResponse{
		Page:           page,
		PerPage:        perPage,
		TotalPages:     totalPages,
		TotalResources: total,
		Data:           views,
	}, nil
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*post.PostView, error) {
	return s.repo.GetView(ctx, id)
}

func (s *postService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]post.PostView, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

func (s *postService) Create(ctx context.Context, req post.CreatePostRequest, coverURL *string) (*post.PostView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &post.BlogPost{
		ID:        uuid.New(),
		Category:  req.Category,
		Title:     req.Title,
		Cover:     coverURL,
		ReadTime:  req.ParsedReadTime(),
		AuthorID:  uuid.MustParse(req.Author),
		Content:   req.Content,
		Comments:  []post.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.GetView(ctx, p.ID)
}

func (s *postService) Update(ctx context.Context, id uuid.UUID, req post.UpdatePostRequest) (*post.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Category = req.Category
	p.Title = req.Title
	if req.Cover != nil {
		p.Cover = req.Cover
	}
	p.ReadTime = req.ReadTime
	p.AuthorID = uuid.MustParse(req.Author)
	p.Content = req.Content
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *postService) ReplaceCover(ctx context.Context, id uuid.UUID, coverURL *string) (*post.BlogPost, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Cover = coverURL
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *postService) ListComments(ctx context.Context, postID uuid.UUID) ([]post.CommentView, error) {
	view, err := s.repo.GetView(ctx, postID)
	if err != nil {
		return nil, err
	}
	return view.Comments, nil
}

func (s *postService) GetComment(ctx context.Context, postID, commentID uuid.UUID) (*post.CommentView, error) {
	view, err := s.repo.GetView(ctx, postID)
	if err != nil {
		return nil, err
	}

	for i := range view.Comments {
		if view.Comments[i].ID == commentID {
			return &view.Comments[i], nil
		}
	}

	return nil, post.ErrCommentNotFound
}

func (s *postService) AddComment(ctx context.Context, postID uuid.UUID, req post.AddCommentRequest) (*post.PostView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	p.Comments = append(p.Comments, post.Comment{
		ID:     uuid.New(),
		Text:   req.Text,
		UserID: uuid.MustParse(req.User),
		Date:   time.Now().UTC(),
	})
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.GetView(ctx, postID)
}

func (s *postService) EditComment(ctx context.Context, postID, commentID uuid.UUID, req post.EditCommentRequest) (*post.PostView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			p.Comments[i].Text = req.Text
			found = true
			break
		}
	}
	if !found {
		return nil, post.ErrCommentNotFound
	}

	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.GetView(ctx, postID)
}

func (s *postService) RemoveComment(ctx context.Context, postID, commentID uuid.UUID) (*post.PostView, error) {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	found := false
	remaining := make([]post.Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		if c.ID == commentID {
			found = true
			continue
		}
		remaining = append(remaining, c)
	}
	if !found {
		return nil, post.ErrCommentNotFound
	}

	p.Comments = remaining
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.GetView(ctx, postID)
}
