package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-sim/pkg/auth"
	"github.com/iamasit07/connect4-sim/pkg/httputil"
)

const ClientKey = "client"

// AuthMiddleware validates the bearer access token and stores the client
// name in the context. With required=false requests pass through untouched.
func AuthMiddleware(issuer *auth.TokenIssuer, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !required {
			c.Next()
			return
		}

		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := issuer.ValidateAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ClientKey, claims.Client)
		c.Next()
	}
}
