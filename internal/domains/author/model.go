package author

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Author is the identity record behind every post, comment and like.
type Author struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	BirthDate    time.Time `json:"birth_date"`
	PasswordHash string    `json:"-"` // never serialized outward
	Avatar       *string   `json:"avatar"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicProfile is the projection embedded in posts, comments and likes.
type PublicProfile struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Surname string    `json:"surname"`
	Email   string    `json:"email"`
	Avatar  *string   `json:"avatar"`
}

// ToPublicProfile strips everything a stranger should not see.
func (a *Author) ToPublicProfile() PublicProfile {
	return PublicProfile{
		ID:      a.ID,
		Name:    a.Name,
		Surname: a.Surname,
		Email:   a.Email,
		Avatar:  a.Avatar,
	}
}
