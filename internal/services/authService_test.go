package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, VerifyPassword("secret123", hash))
	assert.False(t, VerifyPassword("secret124", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("abc123", "maria", "admin")
	require.NoError(t, err)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims["user_id"])
	assert.Equal(t, "maria", claims["username"])
	assert.Equal(t, "admin", claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	expiry := time.Unix(int64(exp), 0)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiry, time.Minute)
}

func TestVerifyJWTTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("abc123", "maria", "user")
	require.NoError(t, err)

	// Flipping a single byte anywhere invalidates the signature.
	mangled := []byte(token)
	if mangled[10] == 'A' {
		mangled[10] = 'B'
	} else {
		mangled[10] = 'A'
	}

	_, err = VerifyJWT(string(mangled))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJWTWrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT("abc123", "maria", "user")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	_, err = VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJWTExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "abc123",
		"username": "maria",
		"role":     "user",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = VerifyJWT(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJWTGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := VerifyJWT(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestRegisterUserValidation(t *testing.T) {
	// All of these fail before any database access.
	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"blank username", "   ", "a@b.com", "secret123"},
		{"blank email", "maria", "", "secret123"},
		{"blank password", "maria", "a@b.com", ""},
		{"short password", "maria", "a@b.com", "12345"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RegisterUser(tc.username, tc.email, tc.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateAdminValidation(t *testing.T) {
	// Payload problems surface before the admin-count lookup.
	_, err := CreateAdmin("root", "root@escola.br", "123")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CreateAdmin("", "root@escola.br", "secret123")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginUserBlankCredentials(t *testing.T) {
	_, _, err := LoginUser("", "whatever")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, _, err = LoginUser("maria", "")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}
