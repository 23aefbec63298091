package accounts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an identity embedded in access tokens
type Identity interface {
	ID() string
	Username() string
	Email() string
	FullName() string
}

// TokenPair is one issued session: a short-lived access token and the
// long-lived refresh token whose value is persisted on the user record.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenService mints and validates the two token kinds
type TokenService interface {
	SignAccessToken(identity Identity) (string, error)
	SignRefreshToken(userID uuid.UUID) (string, error)
	ValidateAccessToken(raw string) (*AccessClaims, error)
	ValidateRefreshToken(raw string) (*RefreshClaims, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// Uploader is the media collaborator: local staging path in, public URL out.
// An empty path is a no-op returning an empty URL and no error.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ACCOUNTS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
