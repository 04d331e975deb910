package author

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/infrastructure/identity"
)

// Service is the author business logic: registration, local and
// federated login, and the self-only profile operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest, avatarURL *string) (*Author, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// FederatedLogin consumes an externally verified profile. Repeated
	// calls for the same email never create duplicate authors.
	FederatedLogin(ctx context.Context, profile identity.Profile) (*LoginResponse, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	List(ctx context.Context) ([]Author, error)

	// UpdateProfile and Delete are self-only: actingID must equal
	// targetID or the call fails with ErrForbidden before any mutation.
	UpdateProfile(ctx context.Context, actingID, targetID uuid.UUID, req UpdateProfileRequest) (*Author, error)
	Delete(ctx context.Context, actingID, targetID uuid.UUID) error

	// UpdateAvatar replaces the avatar reference unconditionally.
	UpdateAvatar(ctx context.Context, targetID uuid.UUID, avatarURL *string) (*Author, error)
}
