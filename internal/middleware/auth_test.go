package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webpersonal/api/internal/security"
)

func newAuthRouter(tokens *security.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Auth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextUserID)})
	})
	return router
}

func TestAuth_MissingHeader(t *testing.T) {
	router := newAuthRouter(security.NewTokenService("secret", time.Hour, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_token")
}

func TestAuth_WrongScheme(t *testing.T) {
	tokens := security.NewTokenService("secret", time.Hour, 1)
	router := newAuthRouter(tokens)

	token, err := tokens.IssueAccessToken("user-1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_token")
}

func TestAuth_InvalidToken(t *testing.T) {
	router := newAuthRouter(security.NewTokenService("secret", time.Hour, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token")
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := security.NewTokenService("secret", -time.Minute, 1)
	router := newAuthRouter(security.NewTokenService("secret", time.Hour, 1))

	token, err := expired.IssueAccessToken("user-1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	tokens := security.NewTokenService("secret", time.Hour, 1)
	router := newAuthRouter(tokens)

	token, err := tokens.IssueRefreshToken("user-1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code, "refresh tokens do not authorize protected routes")
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := security.NewTokenService("secret", time.Hour, 1)
	router := newAuthRouter(tokens)

	token, err := tokens.IssueAccessToken("user-42")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-42")
}
