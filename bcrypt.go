package accounts

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt cost used when the config does not set one.
const DefaultHashCost = 14

// Hasher is the password hasher, constructed with an explicit cost so the
// work factor is configuration, not ambient state.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using the configured bcrypt cost.
func NewHasher(cfg Config) *Hasher {
	cost := cfg.GetHashCost()
	if cost <= 0 {
		cost = DefaultHashCost
	}
	return &Hasher{cost: cost}
}

// HashPassword will generate a password hash
func (h *Hasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}
	return string(out), nil
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func (h *Hasher) ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return goerrors.Wrap(err, goerrors.CategoryAuth, "failed to compare password and hash")
	}
	return nil
}

var _ PasswordAuthenticator = (*Hasher)(nil)
