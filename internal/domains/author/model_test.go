package author

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPublicProfile(t *testing.T) {
	avatar := "http://example.com/a.png"
	a := Author{
		ID:           uuid.New(),
		Name:         "Ada",
		Surname:      "Lovelace",
		Email:        "ada@example.com",
		BirthDate:    time.Date(1990, 12, 10, 0, 0, 0, 0, time.UTC),
		PasswordHash: "$2a$12$secret",
		Avatar:       &avatar,
		Role:         RoleUser,
	}

	p := a.ToPublicProfile()
	assert.Equal(t, a.ID, p.ID)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "Lovelace", p.Surname)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, &avatar, p.Avatar)
}

func TestAuthorNeverSerializesHash(t *testing.T) {
	a := Author{PasswordHash: "$2a$12$secret"}

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
}
