package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/infrastructure/identity"
	"blog-backend/pkg/jwt"
)

type fakeAuthorRepository struct {
	authors map[uuid.UUID]author.Author
}

func newFakeAuthorRepository() *fakeAuthorRepository {
	return &fakeAuthorRepository{authors: map[uuid.UUID]author.Author{}}
}

func (f *fakeAuthorRepository) Create(_ context.Context, a *author.Author) error {
	for _, existing := range f.authors {
		if existing.Email == a.Email {
			return author.ErrEmailAlreadyExists
		}
	}
	f.authors[a.ID] = *a
	return nil
}

func (f *fakeAuthorRepository) FindByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

func (f *fakeAuthorRepository) FindByEmail(_ context.Context, email string) (*author.Author, error) {
	for _, a := range f.authors {
		if a.Email == email {
			found := a
			return &found, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (f *fakeAuthorRepository) List(_ context.Context) ([]author.Author, error) {
	list := make([]author.Author, 0, len(f.authors))
	for _, a := range f.authors {
		list = append(list, a)
	}
	return list, nil
}

func (f *fakeAuthorRepository) Update(_ context.Context, a *author.Author) error {
	if _, ok := f.authors[a.ID]; !ok {
		return author.ErrAuthorNotFound
	}
	f.authors[a.ID] = *a
	return nil
}

func (f *fakeAuthorRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(f.authors, id)
	return nil
}

type fakeEmailService struct {
	sent []email.WelcomeEmailData
	err  error
}

func (f *fakeEmailService) SendWelcomeEmail(_ context.Context, data email.WelcomeEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

func newService() (author.Service, *fakeAuthorRepository, *fakeEmailService) {
	repo := newFakeAuthorRepository()
	mail := &fakeEmailService{}
	svc := NewAuthorService(repo, jwt.NewManager("test-secret"), mail)
	return svc, repo, mail
}

func registerRequest() author.RegisterRequest {
	return author.RegisterRequest{
		Name:      "Ada",
		Surname:   "Lovelace",
		Email:     "ada@example.com",
		BirthDate: "1990-12-10",
		Password:  "analytical-engine",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, mail := newService()

	created, err := svc.Register(context.Background(), registerRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, author.RoleUser, created.Role)
	assert.NotEqual(t, "analytical-engine", created.PasswordHash)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "ada@example.com", mail.sent[0].Email)

	res, err := svc.Login(context.Background(), author.LoginRequest{
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, created.ID, res.Author.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Register(context.Background(), registerRequest(), nil)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest(), nil)
	assert.ErrorIs(t, err, author.ErrEmailAlreadyExists)
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	svc, repo, mail := newService()
	mail.err = errors.New("smtp unreachable")

	created, err := svc.Register(context.Background(), registerRequest(), nil)
	require.NoError(t, err)

	_, err = repo.FindByID(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestRegisterRejectsFutureBirthDate(t *testing.T) {
	svc, _, _ := newService()

	req := registerRequest()
	req.BirthDate = "2999-01-01"

	_, err := svc.Register(context.Background(), req, nil)
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Register(context.Background(), registerRequest(), nil)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), author.LoginRequest{
		Email:    "ada@example.com",
		Password: "difference-engine",
	})
	assert.ErrorIs(t, err, author.ErrInvalidPassword)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Login(context.Background(), author.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestFederatedLoginCreatesOnFirstContact(t *testing.T) {
	svc, repo, mail := newService()

	profile := identity.Profile{
		Email:      "grace@example.com",
		GivenName:  "Grace",
		FamilyName: "Hopper",
	}

	res, err := svc.FederatedLogin(context.Background(), profile)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Grace", res.Author.Name)
	assert.Equal(t, "Hopper", res.Author.Surname)
	require.Len(t, mail.sent, 1)

	// Second login resolves the same record instead of creating one.
	again, err := svc.FederatedLogin(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, res.Author.ID, again.Author.ID)
	assert.Len(t, repo.authors, 1)
	assert.Len(t, mail.sent, 1)
}

func TestFederatedLoginSplitsDisplayName(t *testing.T) {
	svc, _, _ := newService()

	res, err := svc.FederatedLogin(context.Background(), identity.Profile{
		Email:       "margaret@example.com",
		DisplayName: "Margaret Heafield Hamilton",
	})
	require.NoError(t, err)

	assert.Equal(t, "Margaret", res.Author.Name)
	assert.Equal(t, "Heafield Hamilton", res.Author.Surname)
}

func TestUpdateProfileSelfOnly(t *testing.T) {
	svc, repo, _ := newService()

	created, err := svc.Register(context.Background(), registerRequest(), nil)
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = svc.UpdateProfile(context.Background(), stranger, created.ID, author.UpdateProfileRequest{Name: "Mallory"})
	assert.ErrorIs(t, err, author.ErrForbidden)

	// Rejected before any mutation.
	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.Name)
}

func TestUpdateProfileMergesFields(t *testing.T) {
	svc, _, _ := newService()

	created, err := svc.Register(context.Background(), registerRequest(), nil)
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), created.ID, created.ID, author.UpdateProfileRequest{
		Surname: "Byron",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, "Byron", updated.Surname)
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestDeleteSelfOnly(t *testing.T) {
	svc, repo, _ := newService()

	created, err := svc.Register(context.Background(), registerRequest(), nil)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New(), created.ID)
	assert.ErrorIs(t, err, author.ErrForbidden)

	err = svc.Delete(context.Background(), created.ID, created.ID)
	require.NoError(t, err)

	_, err = repo.FindByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}
