package accounts_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	accounts "github.com/hashir-mohd/megaProject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIdentity() accounts.Identity {
	return accounts.NewIdentityFromUser(&accounts.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Example",
	})
}

func TestTokenServiceAccessTokenRoundTrip(t *testing.T) {
	service := accounts.NewTokenService(newTestConfig(), nil)
	identity := newTestIdentity()

	raw, err := service.SignAccessToken(identity)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := service.ValidateAccessToken(raw)
	require.NoError(t, err)

	assert.Equal(t, identity.ID(), claims.UserID())
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice Example", claims.FullName)
	assert.Equal(t, "accounts-test", claims.Issuer)
}

func TestTokenServiceRefreshTokenRoundTrip(t *testing.T) {
	service := accounts.NewTokenService(newTestConfig(), nil)
	userID := uuid.New()

	raw, err := service.SignRefreshToken(userID)
	require.NoError(t, err)

	claims, err := service.ValidateRefreshToken(raw)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.UserID())
}

func TestTokenServiceRefreshTokenCarriesNoIdentityClaims(t *testing.T) {
	service := accounts.NewTokenService(newTestConfig(), nil)

	raw, err := service.SignRefreshToken(uuid.New())
	require.NoError(t, err)

	// A refresh token must parse as access claims without yielding identity
	// attributes; it only carries the user id.
	claims, err := service.ValidateAccessToken(raw)
	require.NoError(t, err)
	assert.Empty(t, claims.Username)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.FullName)
}

func TestTokenServiceMintsUniqueTokens(t *testing.T) {
	service := accounts.NewTokenService(newTestConfig(), nil)
	userID := uuid.New()

	// two tokens minted back to back land in the same second; the jti is
	// what keeps them distinct, and rotation depends on that
	first, err := service.SignRefreshToken(userID)
	require.NoError(t, err)
	second, err := service.SignRefreshToken(userID)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	claims, err := service.ValidateRefreshToken(second)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	identity := newTestIdentity()
	accessA, err := service.SignAccessToken(identity)
	require.NoError(t, err)
	accessB, err := service.SignAccessToken(identity)
	require.NoError(t, err)
	assert.NotEqual(t, accessA, accessB)
}

func TestTokenServiceRejectsNilInputs(t *testing.T) {
	service := accounts.NewTokenService(newTestConfig(), nil)

	_, err := service.SignAccessToken(nil)
	assert.Error(t, err)

	_, err = service.SignRefreshToken(uuid.Nil)
	assert.Error(t, err)
}

func TestTokenServiceRejectsForeignSignature(t *testing.T) {
	service := accounts.NewTokenService(newTestConfig(), nil)

	otherCfg := newTestConfig()
	otherCfg.SigningKey = "a-different-signing-key"
	other := accounts.NewTokenService(otherCfg, nil)

	raw, err := other.SignAccessToken(newTestIdentity())
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(raw)
	assert.Error(t, err)
	assert.True(t, accounts.IsMalformedError(err))
}

func TestTokenServiceRejectsExpiredToken(t *testing.T) {
	cfg := newTestConfig()
	cfg.AccessTokenTTL = -time.Minute
	cfg.RefreshTokenTTL = -time.Minute
	service := accounts.NewTokenService(cfg, nil)

	raw, err := service.SignAccessToken(newTestIdentity())
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, accounts.ErrTokenExpired)
	assert.True(t, accounts.IsTokenExpiredError(err))

	refresh, err := service.SignRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = service.ValidateRefreshToken(refresh)
	assert.ErrorIs(t, err, accounts.ErrTokenExpired)
}

func TestTokenServiceRejectsIssuerMismatch(t *testing.T) {
	otherCfg := newTestConfig()
	otherCfg.Issuer = "someone-else"
	other := accounts.NewTokenService(otherCfg, nil)

	raw, err := other.SignAccessToken(newTestIdentity())
	require.NoError(t, err)

	service := accounts.NewTokenService(newTestConfig(), nil)
	_, err = service.ValidateAccessToken(raw)
	assert.Error(t, err)
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	service := accounts.NewTokenService(newTestConfig(), nil)

	_, err := service.ValidateAccessToken("not-a-token")
	require.Error(t, err)
	assert.True(t, accounts.IsMalformedError(err))

	_, err = service.ValidateRefreshToken("")
	assert.Error(t, err)
}
