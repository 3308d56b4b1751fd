package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booknest/backend/internal/config"
	"github.com/booknest/backend/internal/model"
	"github.com/booknest/backend/internal/service"
)

func newTestIssuer(t *testing.T) *service.TokenIssuer {
	t.Helper()
	issuer, err := service.NewTokenIssuer(config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     "15m",
		RefreshTTL:    "168h",
	})
	require.NoError(t, err)
	return issuer
}

func accessTokenFor(t *testing.T, issuer *service.TokenIssuer, role string) (uuid.UUID, string) {
	t.Helper()
	user := &model.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@x.com",
		Role:     role,
	}
	token, err := issuer.IssueAccess(user)
	require.NoError(t, err)
	return user.ID, token
}

func identityEcho(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID.String(), "role": user.Role})
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := newTestIssuer(t)

	router := gin.New()
	router.GET("/protected", AuthRequired(issuer), identityEcho)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no-header", "", http.StatusUnauthorized},
		{"wrong-scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage-token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	userID, token := accessTokenFor(t, issuer, model.RoleUser)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
}

func TestAuthOptional(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := newTestIssuer(t)

	router := gin.New()
	router.GET("/books", AuthOptional(issuer), identityEcho)

	// Anonymous requests pass through without identity.
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "anonymous")

	// A bad token does not block the request either.
	req = httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer junk")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "anonymous")

	_, token := accessTokenFor(t, issuer, model.RoleUser)
	req = httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "anonymous")
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := newTestIssuer(t)

	router := gin.New()
	router.GET("/admin", AuthRequired(issuer), RequireRole(model.RoleAdmin), identityEcho)

	_, userToken := accessTokenFor(t, issuer, model.RoleUser)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, adminToken := accessTokenFor(t, issuer, model.RoleAdmin)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
