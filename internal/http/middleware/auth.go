package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ksarmiento/blog-backend/internal/token"
)

// SessionCookie is the httpOnly cookie carrying the signed session token.
const SessionCookie = "blogToken"

// ClaimsKey is the gin context key holding the verified session claims.
const ClaimsKey = "sessionClaims"

// SessionAuth verifies the session cookie and stores the decoded claims
// on the context for downstream handlers.
func SessionAuth(maker *token.JWTMaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "No token provided",
			})
			return
		}

		claims, err := maker.VerifyToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid token",
			})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// SessionClaims returns the claims stored by SessionAuth.
func SessionClaims(c *gin.Context) (*token.UserClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*token.UserClaims)
	return claims, ok
}
