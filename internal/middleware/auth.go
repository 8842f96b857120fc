package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"webpersonal/api/internal/security"
)

const (
	ContextUserID = "user_id"
	ContextClaims = "token_claims"
)

// Auth gates protected routes on a valid access token. Identity is
// taken from the token alone; no session state exists server-side.
func Auth(tokens *security.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		// Refresh tokens are only good for minting access tokens.
		if claims.TokenType != security.TokenTypeAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, *claims)

		c.Next()
	}
}
