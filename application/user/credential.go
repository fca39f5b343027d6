package user

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muhammadheryan/marketplace/cmd/config"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

// Claims carried by every bearer token. ID is the session key in Redis.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Credentials hashes passwords and signs/parses bearer tokens.
type Credentials struct {
	secret []byte
	expiry time.Duration
	cost   int
}

func NewCredentials(cfg config.AuthConfig) *Credentials {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	expiry := cfg.JWTExpiration
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &Credentials{secret: []byte(cfg.JWTSecret), expiry: expiry, cost: cost}
}

func (c *Credentials) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (c *Credentials) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a token for the user and returns it with its claims.
func (c *Credentials) IssueToken(userID uint64, email string) (string, *Claims, error) {
	jti, err := uuid.NewRandom()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate jti: %w", err)
	}

	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims, nil
}

// ParseToken checks signature and expiry and returns the subject as a user id.
func (c *Credentials) ParseToken(tokenString string) (uint64, *Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return 0, nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, nil, fmt.Errorf("invalid claims")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid user id in token")
	}

	if claims.ID == "" {
		return 0, nil, fmt.Errorf("token missing jti")
	}

	return userID, claims, nil
}
