package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GenerateAndVerify(t *testing.T) {
	m := NewManager("test-secret")
	userID := uuid.New()

	token, err := m.Generate(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsedID, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").Generate(uuid.New())
	require.NoError(t, err)

	_, err = NewManager("secret-b").Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Verify_Malformed(t *testing.T) {
	m := NewManager("test-secret")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestManager_Verify_Expired(t *testing.T) {
	m := NewManager("test-secret")

	claims := Claims{
		UserID: uuid.New(),
		RegisteredClaims: gojwt.RegisteredClaims{
			IssuedAt:  gojwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Verify_MissingSubject(t *testing.T) {
	m := NewManager("test-secret")

	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
