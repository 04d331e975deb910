package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/infrastructure/identity"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

const bcryptCost = 12

type authorService struct {
	repo   author.Repository
	tokens *jwt.Manager
	mail   email.EmailService
}

func NewAuthorService(repo author.Repository, tokens *jwt.Manager, mail email.EmailService) author.Service {
	return &authorService{
		repo:   repo,
		tokens: tokens,
		mail:   mail,
	}
}

func (s *authorService) Register(ctx context.Context, req author.RegisterRequest, avatarURL *string) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	a := &author.Author{
		ID:           uuid.New(),
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		BirthDate:    req.ParsedBirthDate(),
		PasswordHash: string(passwordHash),
		Avatar:       avatarURL,
		Role:         author.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.sendWelcome(ctx, a)

	return a, nil
}

// sendWelcome dispatches the welcome mail. Delivery failure is logged
// and swallowed so it can never fail the registration it follows.
func (s *authorService) sendWelcome(ctx context.Context, a *author.Author) {
	err := s.mail.SendWelcomeEmail(ctx, email.WelcomeEmailData{
		Email:   a.Email,
		Name:    a.Name,
		Surname: a.Surname,
	})
	if err != nil {
		logger.Error("welcome email delivery failed", err)
	}
}

func (s *authorService) Login(ctx context.Context, req author.LoginRequest) (*author.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, author.ErrInvalidPassword
	}

	token, err := s.tokens.Generate(a.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &author.LoginResponse{
		Message: "Login successful",
		Token:   token,
		Author:  *a,
	}, nil
}

func (s *authorService) FederatedLogin(ctx context.Context, profile identity.Profile) (*author.LoginResponse, error) {
	a, err := s.repo.FindByEmail(ctx, profile.Email)
	if errors.Is(err, author.ErrAuthorNotFound) {
		a, err = s.createFederatedAuthor(ctx, profile)
	}
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(a.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &author.LoginResponse{
		Message: "Login successful",
		Token:   token,
		Author:  *a,
	}, nil
}

func (s *authorService) createFederatedAuthor(ctx context.Context, profile identity.Profile) (*author.Author, error) {
	// The throwaway secret keeps the NOT NULL hash column satisfied;
	// it is random and never usable for a local login.
	randomSecret, err := generateSecureToken(16)
	if err != nil {
		return nil, fmt.Errorf("generate throwaway secret: %w", err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(randomSecret), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash throwaway secret: %w", err)
	}

	name, surname := splitProfileName(profile)

	now := time.Now()
	a := &author.Author{
		ID:           uuid.New(),
		Name:         name,
		Surname:      surname,
		Email:        profile.Email,
		BirthDate:    now,
		PasswordHash: string(passwordHash),
		Role:         author.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if profile.AvatarURL != "" {
		avatar := profile.AvatarURL
		a.Avatar = &avatar
	}

	if err := s.repo.Create(ctx, a); err != nil {
		// A concurrent federated login for the same email got there
		// first; the unique constraint makes this benign.
		if errors.Is(err, author.ErrEmailAlreadyExists) {
			return s.repo.FindByEmail(ctx, profile.Email)
		}
		return nil, err
	}

	s.sendWelcome(ctx, a)

	return a, nil
}

func splitProfileName(profile identity.Profile) (string, string) {
	name := profile.GivenName
	surname := profile.FamilyName

	if name == "" || surname == "" {
		parts := strings.Fields(profile.DisplayName)
		if name == "" && len(parts) > 0 {
			name = parts[0]
		}
		if surname == "" && len(parts) > 1 {
			surname = strings.Join(parts[1:], " ")
		}
	}

	return name, surname
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *authorService) List(ctx context.Context) ([]author.Author, error) {
	return s.repo.List(ctx)
}

func (s *authorService) UpdateProfile(ctx context.Context, actingID, targetID uuid.UUID, req author.UpdateProfileRequest) (*author.Author, error) {
	if actingID != targetID {
		return nil, author.ErrForbidden
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		a.Name = req.Name
	}
	if req.Surname != "" {
		a.Surname = req.Surname
	}
	if req.Email != "" {
		a.Email = req.Email
	}
	if req.BirthDate != "" {
		date, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("parse birth date: %w", err)
		}
		a.BirthDate = date
	}
	if req.Avatar != nil {
		a.Avatar = req.Avatar
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *authorService) UpdateAvatar(ctx context.Context, targetID uuid.UUID, avatarURL *string) (*author.Author, error) {
	a, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	a.Avatar = avatarURL
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *authorService) Delete(ctx context.Context, actingID, targetID uuid.UUID) error {
	if actingID != targetID {
		return author.ErrForbidden
	}

	return s.repo.Delete(ctx, targetID)
}

func generateSecureToken(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
