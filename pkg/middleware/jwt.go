package middleware

import (
	"net/http"
	"strings"

	"paisa/expense-api/pkg/security"

	"github.com/gin-gonic/gin"
)

// NewJWTMiddleware guards protected routes. It accepts the session
// credential from the auth_token cookie or an Authorization: Bearer
// header, validates it without any database lookup, and puts the
// embedded user ID into the context as userID. Handlers must use that
// value as the only source of the acting owner.
//
// Missing, malformed, expired and badly signed tokens all produce the
// same 401 so nothing about the failure leaks.
func NewJWTMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authentication required",
				"requestID": requestID,
			})
			return
		}

		userID, err := security.ParseSession(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authentication required",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}

	return ""
}
