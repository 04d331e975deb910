package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/post"
)

// fakePostRepository keeps aggregates in memory and projects views
// without resolving profiles, which the service never inspects.
type fakePostRepository struct {
	posts map[uuid.UUID]post.BlogPost
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{posts: map[uuid.UUID]post.BlogPost{}}
}

func (f *fakePostRepository) Create(_ context.Context, p *post.BlogPost) error {
	f.posts[p.ID] = *p
	return nil
}

func (f *fakePostRepository) GetByID(_ context.Context, id uuid.UUID) (*post.BlogPost, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	copied := p
	copied.Comments = append([]post.Comment{}, p.Comments...)
	return &copied, nil
}

func (f *fakePostRepository) toView(p post.BlogPost) post.PostView {
	view := post.PostView{
		ID:        p.ID,
		Category:  p.Category,
		Title:     p.Title,
		Cover:     p.Cover,
		ReadTime:  p.ReadTime,
		Content:   p.Content,
		Comments:  []post.CommentView{},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, c := range p.Comments {
		view.Comments = append(view.Comments, post.CommentView{
			ID:   c.ID,
			Text: c.Text,
			Date: c.Date,
		})
	}
	return view
}

func (f *fakePostRepository) GetView(ctx context.Context, id uuid.UUID) (*post.PostView, error) {
	p, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := f.toView(*p)
	return &view, nil
}

func (f *fakePostRepository) List(_ context.Context, offset, limit int) ([]post.PostView, int, error) {
	all := make([]post.BlogPost, 0, len(f.posts))
	for _, p := range f.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	views := []post.PostView{}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		views = append(views, f.toView(all[i]))
	}
	return views, len(all), nil
}

func (f *fakePostRepository) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]post.PostView, error) {
	views := []post.PostView{}
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			views = append(views, f.toView(p))
		}
	}
	return views, nil
}

func (f *fakePostRepository) Update(_ context.Context, p *post.BlogPost) error {
	if _, ok := f.posts[p.ID]; !ok {
		return post.ErrPostNotFound
	}
	f.posts[p.ID] = *p
	return nil
}

func (f *fakePostRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.posts[id]
	return ok, nil
}

func seedPost(t *testing.T, repo *fakePostRepository, createdAt time.Time) uuid.UUID {
	t.Helper()
	p := post.BlogPost{
		ID:        uuid.New(),
		Category:  "engineering",
		Title:     "title",
		ReadTime:  post.ReadTime{Value: 5, Unit: "minutes"},
		AuthorID:  uuid.New(),
		Content:   "content",
		Comments:  []post.Comment{},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), &p))
	return p.ID
}

func TestListClampsPerPage(t *testing.T) {
	repo := newFakePostRepository()
	svc := NewPostService(repo)
	base := time.Now().UTC()
	for i := 0; i < 10; i++ {
		seedPost(t, repo, base.Add(time.Duration(i)*time.Minute))
	}

	resp, err := svc.List(context.Background(), 1, 20)
	require.NoError(t, err)

	assert.Equal(t, 9, resp.PerPage)
	assert.Len(t, resp.Data, 9)
	assert.Equal(t, 10, resp.TotalResources)
	assert.Equal(t, 2, resp.TotalPages)

	resp, err = svc.List(context.Background(), 2, 20)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
}

func TestListDefaultsPaging(t *testing.T) {
	repo := newFakePostRepository()
	svc := NewPostService(repo)
	seedPost(t, repo, time.Now().UTC())

	resp, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 9, resp.PerPage)
	assert.Len(t, resp.Data, 1)
}

func TestListOrdersNewestFirst(t *testing.T) {
	repo := newFakePostRepository()
	svc := NewPostService(repo)
	base := time.Now().UTC()
	oldID := seedPost(t, repo, base)
	newID := seedPost(t, repo, base.Add(time.Hour))

	resp, err := svc.List(context.Background(), 1, 9)
	require.NoError(t, err)

	require.Len(t, resp.Data, 2)
	assert.Equal(t, newID, resp.Data[0].ID)
	assert.Equal(t, oldID, resp.Data[1].ID)
}

func TestCreateRejectsBadReadTime(t *testing.T) {
	svc := NewPostService(newFakePostRepository())

	_, err := svc.Create(context.Background(), post.CreatePostRequest{
		Category: "engineering",
		Title:    "title",
		ReadTime: "not json",
		Author:   uuid.NewString(),
		Content:  "content",
	}, nil)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "readTime")
}

func TestCreateParsesReadTime(t *testing.T) {
	repo := newFakePostRepository()
	svc := NewPostService(repo)

	rt, err := json.Marshal(post.ReadTime{Value: 7, Unit: "minutes"})
	require.NoError(t, err)

	view, err := svc.Create(context.Background(), post.CreatePostRequest{
		Category: "engineering",
		Title:    "title",
		ReadTime: string(rt),
		Author:   uuid.NewString(),
		Content:  "content",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, post.ReadTime{Value: 7, Unit: "minutes"}, view.ReadTime)
	assert.Empty(t, view.Comments)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewPostService(newFakePostRepository())

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestCommentLifecyclePreservesOrder(t *testing.T) {
	repo := newFakePostRepository()
	svc := NewPostService(repo)
	postID := seedPost(t, repo, time.Now().UTC())

	var commentIDs []uuid.UUID
	for i := 0; i < 3; i++ {
		view, err := svc.AddComment(context.Background(), postID, post.AddCommentRequest{
			Text: fmt.Sprintf("comment %d", i),
			User: uuid.NewString(),
		})
		require.NoError(t, err)
		require.Len(t, view.Comments, i+1)
		commentIDs = append(commentIDs, view.Comments[i].ID)
	}

	// Editing the middle comment keeps it in place.
	view, err := svc.EditComment(context.Background(), postID, commentIDs[1], post.EditCommentRequest{Text: "edited"})
	require.NoError(t, err)
	require.Len(t, view.Comments, 3)
	assert.Equal(t, commentIDs[1], view.Comments[1].ID)
	assert.Equal(t, "edited", view.Comments[1].Text)

	// Removing the first leaves the survivors in order.
	view, err = svc.RemoveComment(context.Background(), postID, commentIDs[0])
	require.NoError(t, err)
	require.Len(t, view.Comments, 2)
	assert.Equal(t, commentIDs[1], view.Comments[0].ID)
	assert.Equal(t, commentIDs[2], view.Comments[1].ID)
}

func TestCommentOpsOnMissingPost(t *testing.T) {
	svc := NewPostService(newFakePostRepository())
	missing := uuid.New()

	_, err := svc.AddComment(context.Background(), missing, post.AddCommentRequest{
		Text: "text",
		User: uuid.NewString(),
	})
	assert.ErrorIs(t, err, post.ErrPostNotFound)

	_, err = svc.EditComment(context.Background(), missing, uuid.New(), post.EditCommentRequest{Text: "text"})
	assert.ErrorIs(t, err, post.ErrPostNotFound)

	_, err = svc.RemoveComment(context.Background(), missing, uuid.New())
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestCommentNotFound(t *testing.T) {
	repo := newFakePostRepository()
	svc := NewPostService(repo)
	postID := seedPost(t, repo, time.Now().UTC())

	_, err := svc.GetComment(context.Background(), postID, uuid.New())
	assert.ErrorIs(t, err, post.ErrCommentNotFound)

	_, err = svc.EditComment(context.Background(), postID, uuid.New(), post.EditCommentRequest{Text: "text"})
	assert.ErrorIs(t, err, post.ErrCommentNotFound)

	_, err = svc.RemoveComment(context.Background(), postID, uuid.New())
	assert.ErrorIs(t, err, post.ErrCommentNotFound)
}

func TestUpdateReplacesFields(t *testing.T) {
	repo := newFakePostRepository()
	svc := NewPostService(repo)
	postID := seedPost(t, repo, time.Now().UTC())

	newAuthor := uuid.NewString()
	updated, err := svc.Update(context.Background(), postID, post.UpdatePostRequest{
		Category: "design",
		Title:    "new title",
		ReadTime: post.ReadTime{Value: 3, Unit: "minutes"},
		Author:   newAuthor,
		Content:  "new content",
	})
	require.NoError(t, err)

	assert.Equal(t, "design", updated.Category)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, newAuthor, updated.AuthorID.String())
	assert.Equal(t, post.ReadTime{Value: 3, Unit: "minutes"}, updated.ReadTime)
}

func TestDeleteMissingPost(t *testing.T) {
	svc := NewPostService(newFakePostRepository())
	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), post.ErrPostNotFound)
}
