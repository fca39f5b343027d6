package user

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/muhammadheryan/marketplace/cmd/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testCredentials(expiry time.Duration) *Credentials {
	return NewCredentials(config.AuthConfig{
		JWTSecret:     "test-secret-key-for-jwt-signing",
		JWTExpiration: expiry,
		BcryptCost:    bcrypt.MinCost,
	})
}

func TestCredentials_HashVerify(t *testing.T) {
	c := testCredentials(time.Hour)

	hash, err := c.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, c.Verify("password123", hash))
	assert.False(t, c.Verify("password124", hash))
	assert.False(t, c.Verify("password123", "not-a-hash"))
}

func TestCredentials_HashLength(t *testing.T) {
	c := testCredentials(time.Hour)

	hash, err := c.Hash(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)
	assert.True(t, c.Verify(strings.Repeat("a", MaxPasswordBytes), hash))

	_, err = c.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestNewCredentials_Defaults(t *testing.T) {
	c := NewCredentials(config.AuthConfig{JWTSecret: "s"})
	assert.Equal(t, bcrypt.DefaultCost, c.cost)
	assert.Equal(t, 24*time.Hour, c.expiry)
}

func TestCredentials_IssueAndParse(t *testing.T) {
	c := testCredentials(time.Hour)

	token, claims, err := c.IssueToken(42, "a@b.co")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "42", claims.Subject)

	userID, parsed, err := c.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
	assert.Equal(t, "a@b.co", parsed.Email)
	assert.Equal(t, claims.ID, parsed.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), parsed.ExpiresAt.Time, 5*time.Second)
}

func TestCredentials_ParseRejects(t *testing.T) {
	c := testCredentials(time.Hour)
	other := NewCredentials(config.AuthConfig{JWTSecret: "other-secret", JWTExpiration: time.Hour, BcryptCost: bcrypt.MinCost})

	foreign, _, err := other.IssueToken(1, "a@b.co")
	require.NoError(t, err)

	expired, _, err := (&Credentials{secret: c.secret, expiry: -time.Minute, cost: bcrypt.MinCost}).IssueToken(1, "a@b.co")
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ID: "x", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noJTI, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(c.secret)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "abc", ID: "x", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(c.secret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "invalid.token.string"},
		{name: "wrong secret", token: foreign},
		{name: "expired", token: expired},
		{name: "alg none", token: noneAlg},
		{name: "missing jti", token: noJTI},
		{name: "non numeric subject", token: badSubject},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := c.ParseToken(tt.token)
			assert.Error(t, err)
		})
	}
}
