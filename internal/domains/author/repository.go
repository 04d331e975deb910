package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the credential store. Email uniqueness is enforced by
// the database constraint; Create surfaces it as ErrEmailAlreadyExists.
type Repository interface {
	Create(ctx context.Context, a *Author) error
	FindByID(ctx context.Context, id uuid.UUID) (*Author, error)
	FindByEmail(ctx context.Context, email string) (*Author, error)
	List(ctx context.Context) ([]Author, error)
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id uuid.UUID) error
}
