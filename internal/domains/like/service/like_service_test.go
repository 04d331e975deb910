package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/like"
)

type likeKey struct {
	postID uuid.UUID
	userID uuid.UUID
}

type fakeLikeRepository struct {
	likes map[likeKey]like.Like
}

func newFakeLikeRepository() *fakeLikeRepository {
	return &fakeLikeRepository{likes: map[likeKey]like.Like{}}
}

func (f *fakeLikeRepository) Insert(_ context.Context, l *like.Like) (bool, error) {
	key := likeKey{l.PostID, l.UserID}
	if _, ok := f.likes[key]; ok {
		return false, nil
	}
	f.likes[key] = *l
	return true, nil
}

func (f *fakeLikeRepository) Remove(_ context.Context, postID, userID uuid.UUID) (bool, error) {
	key := likeKey{postID, userID}
	if _, ok := f.likes[key]; !ok {
		return false, nil
	}
	delete(f.likes, key)
	return true, nil
}

func (f *fakeLikeRepository) Exists(_ context.Context, postID, userID uuid.UUID) (bool, error) {
	_, ok := f.likes[likeKey{postID, userID}]
	return ok, nil
}

func (f *fakeLikeRepository) Count(_ context.Context, postID uuid.UUID) (int, error) {
	count := 0
	for key := range f.likes {
		if key.postID == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLikeRepository) ListLikers(_ context.Context, postID uuid.UUID) ([]like.LikeView, error) {
	views := []like.LikeView{}
	for key, l := range f.likes {
		if key.postID != postID {
			continue
		}
		views = append(views, like.LikeView{
			ID:        l.ID,
			PostID:    l.PostID,
			User:      &author.PublicProfile{ID: l.UserID},
			CreatedAt: l.CreatedAt,
		})
	}
	return views, nil
}

type fakePostChecker struct {
	existing map[uuid.UUID]bool
}

func (f *fakePostChecker) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.existing[id], nil
}

func newService(postIDs ...uuid.UUID) (like.Service, *fakeLikeRepository) {
	repo := newFakeLikeRepository()
	checker := &fakePostChecker{existing: map[uuid.UUID]bool{}}
	for _, id := range postIDs {
		checker.existing[id] = true
	}
	return NewLikeService(repo, checker), repo
}

func TestToggleAlternates(t *testing.T) {
	postID := uuid.New()
	userID := uuid.New()
	svc, _ := newService(postID)

	res, err := svc.Toggle(context.Background(), postID, userID)
	require.NoError(t, err)
	assert.Equal(t, like.StatusLiked, res.Status)
	assert.Equal(t, 1, res.LikeCount)

	res, err = svc.Toggle(context.Background(), postID, userID)
	require.NoError(t, err)
	assert.Equal(t, like.StatusUnliked, res.Status)
	assert.Equal(t, 0, res.LikeCount)

	// An even number of toggles restores the original state, an odd
	// number leaves exactly one like.
	for i := 0; i < 5; i++ {
		res, err = svc.Toggle(context.Background(), postID, userID)
		require.NoError(t, err)
	}
	assert.Equal(t, like.StatusLiked, res.Status)
	assert.Equal(t, 1, res.LikeCount)
}

func TestToggleIsPerUser(t *testing.T) {
	postID := uuid.New()
	svc, _ := newService(postID)

	userA := uuid.New()
	userB := uuid.New()

	_, err := svc.Toggle(context.Background(), postID, userA)
	require.NoError(t, err)
	res, err := svc.Toggle(context.Background(), postID, userB)
	require.NoError(t, err)

	assert.Equal(t, like.StatusLiked, res.Status)
	assert.Equal(t, 2, res.LikeCount)

	// Removing one user's like does not touch the other's.
	res, err = svc.Toggle(context.Background(), postID, userA)
	require.NoError(t, err)
	assert.Equal(t, like.StatusUnliked, res.Status)
	assert.Equal(t, 1, res.LikeCount)

	check, err := svc.Check(context.Background(), postID, userB)
	require.NoError(t, err)
	assert.True(t, check.Liked)
}

func TestToggleMissingPost(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, like.ErrPostNotFound)
	assert.Empty(t, repo.likes)
}

func TestCheck(t *testing.T) {
	postID := uuid.New()
	userID := uuid.New()
	svc, _ := newService(postID)

	check, err := svc.Check(context.Background(), postID, userID)
	require.NoError(t, err)
	assert.False(t, check.Liked)

	_, err = svc.Toggle(context.Background(), postID, userID)
	require.NoError(t, err)

	check, err = svc.Check(context.Background(), postID, userID)
	require.NoError(t, err)
	assert.True(t, check.Liked)
}

func TestListLikersMissingPost(t *testing.T) {
	svc, _ := newService()

	_, err := svc.ListLikers(context.Background(), uuid.New())
	assert.ErrorIs(t, err, like.ErrPostNotFound)
}

func TestListLikersReturnsPopulatedLikes(t *testing.T) {
	postID := uuid.New()
	svc, _ := newService(postID)

	userIDs := map[uuid.UUID]bool{}
	for i := 0; i < 3; i++ {
		userID := uuid.New()
		userIDs[userID] = true
		_, err := svc.Toggle(context.Background(), postID, userID)
		require.NoError(t, err)
	}

	res, err := svc.ListLikers(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	require.Len(t, res.Data, 3)

	// Each entry is a like document with its own id and the liking
	// user resolved.
	for _, l := range res.Data {
		assert.NotEqual(t, uuid.Nil, l.ID)
		assert.Equal(t, postID, l.PostID)
		require.NotNil(t, l.User)
		assert.True(t, userIDs[l.User.ID])
	}
}
