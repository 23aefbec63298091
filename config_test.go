package accounts_test

import (
	"testing"
	"time"

	accounts "github.com/hashir-mohd/megaProject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ACCOUNTS_SIGNING_KEY", "env-signing-key")
	t.Setenv("ACCOUNTS_ACCESS_TOKEN_TTL", "30m")
	t.Setenv("ACCOUNTS_REFRESH_TOKEN_TTL", "72h")
	t.Setenv("ACCOUNTS_HASH_COST", "12")

	cfg, err := accounts.ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "env-signing-key", cfg.GetSigningKey())
	assert.Equal(t, 30*time.Minute, cfg.GetAccessTokenTTL())
	assert.Equal(t, 72*time.Hour, cfg.GetRefreshTokenTTL())
	assert.Equal(t, 12, cfg.GetHashCost())
	assert.Equal(t, "megaproject", cfg.GetIssuer())
}

func TestConfigFromEnvRequiresSigningKey(t *testing.T) {
	t.Setenv("ACCOUNTS_SIGNING_KEY", "")

	_, err := accounts.ConfigFromEnv()
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*accounts.Config)
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(c *accounts.Config) {},
			wantErr: false,
		},
		{
			name:    "missing signing key",
			mutate:  func(c *accounts.Config) { c.SigningKey = "" },
			wantErr: true,
		},
		{
			name:    "zero access ttl",
			mutate:  func(c *accounts.Config) { c.AccessTokenTTL = 0 },
			wantErr: true,
		},
		{
			name:    "refresh shorter than access",
			mutate:  func(c *accounts.Config) { c.RefreshTokenTTL = time.Minute },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
