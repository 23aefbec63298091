package accounts

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// Config holds the account core options: signing key and token lifetimes for
// the token service, hash cost for the hasher, and upload layout for the
// media collaborator. It is passed explicitly at construction; nothing here
// is read from globals after startup.
type Config struct {
	SigningKey      string        `env:"ACCOUNTS_SIGNING_KEY"`
	Issuer          string        `env:"ACCOUNTS_ISSUER" envDefault:"megaproject"`
	AccessTokenTTL  time.Duration `env:"ACCOUNTS_ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"ACCOUNTS_REFRESH_TOKEN_TTL" envDefault:"240h"`
	HashCost        int           `env:"ACCOUNTS_HASH_COST" envDefault:"14"`
	UploadDir       string        `env:"ACCOUNTS_UPLOAD_DIR" envDefault:"public/uploads"`
	UploadBaseURL   string        `env:"ACCOUNTS_UPLOAD_BASE_URL" envDefault:"/uploads"`
	DeterministicID bool          `env:"ACCOUNTS_DETERMINISTIC_IDS"`
}

// ConfigFromEnv loads configuration from environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, errors.CategoryOperation, "failed to parse accounts config from env")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate ensures the config can actually sign and hash.
func (c Config) Validate() error {
	if c.SigningKey == "" {
		return errors.New("signing key is required", errors.CategoryValidation)
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive", errors.CategoryValidation)
	}

	if c.RefreshTokenTTL < c.AccessTokenTTL {
		return errors.New("refresh token lifetime must not be shorter than access token lifetime", errors.CategoryValidation)
	}

	return nil
}

func (c Config) GetSigningKey() string { return c.SigningKey }

func (c Config) GetIssuer() string { return c.Issuer }

func (c Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }

func (c Config) GetRefreshTokenTTL() time.Duration { return c.RefreshTokenTTL }

func (c Config) GetHashCost() int { return c.HashCost }

func (c Config) GetUploadDir() string { return c.UploadDir }

func (c Config) GetUploadBaseURL() string { return c.UploadBaseURL }
