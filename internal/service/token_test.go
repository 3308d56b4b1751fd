package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booknest/backend/internal/config"
	"github.com/booknest/backend/internal/model"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     "15m",
		RefreshTTL:    "168h",
	}
}

func testUser() *model.User {
	return &model.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@x.com",
		Role:     model.RoleUser,
		IsActive: true,
	}
}

func TestNewTokenIssuerValidation(t *testing.T) {
	_, err := NewTokenIssuer(config.JWTConfig{AccessTTL: "15m", RefreshTTL: "168h"})
	assert.Error(t, err)

	cfg := testJWTConfig()
	cfg.RefreshSecret = cfg.AccessSecret
	_, err = NewTokenIssuer(cfg)
	assert.Error(t, err)

	cfg = testJWTConfig()
	cfg.AccessTTL = "soon"
	_, err = NewTokenIssuer(cfg)
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer(testJWTConfig())
	require.NoError(t, err)

	user := testUser()
	token, err := issuer.IssueAccess(user)
	require.NoError(t, err)

	claims, err := issuer.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenIssuer(testJWTConfig())
	require.NoError(t, err)

	other, err := NewTokenIssuer(config.JWTConfig{
		AccessSecret:  "other-access",
		RefreshSecret: "other-refresh",
		AccessTTL:     "15m",
		RefreshTTL:    "168h",
	})
	require.NoError(t, err)

	token, err := other.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(token)
	assert.Error(t, err)
}

func TestVerifyRejectsCrossTokenKind(t *testing.T) {
	issuer, err := NewTokenIssuer(testJWTConfig())
	require.NoError(t, err)
	user := testUser()

	access, err := issuer.IssueAccess(user)
	require.NoError(t, err)
	refresh, err := issuer.IssueRefresh(user)
	require.NoError(t, err)

	_, err = issuer.VerifyRefresh(access)
	assert.Error(t, err, "access token must not verify as refresh")

	_, err = issuer.VerifyAccess(refresh)
	assert.Error(t, err, "refresh token must not verify as access")
}

func TestVerifyRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTTL = "1ns"
	issuer, err := NewTokenIssuer(cfg)
	require.NoError(t, err)

	token, err := issuer.IssueAccess(testUser())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = issuer.VerifyAccess(token)
	assert.Error(t, err)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	issuer, err := NewTokenIssuer(testJWTConfig())
	require.NoError(t, err)

	_, err = issuer.VerifyAccess("not-a-token")
	assert.Error(t, err)
	_, err = issuer.VerifyRefresh("")
	assert.Error(t, err)
}
