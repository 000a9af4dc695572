package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/auth"
)

const userIDKey = "user_id"

// RequireAuth accepts "Authorization: Bearer <token>" and stores the user id
// from the token. Missing or bad tokens get 401.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "Not authorized, no token")
			return
		}
		userID, err := auth.ParseToken(secret, strings.TrimSpace(token))
		if err != nil {
			abortUnauthorized(c, "Not authorized, token failed")
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user id, or 0.
func GetUserID(c *gin.Context) int64 {
	if c == nil {
		return 0
	}
	return c.GetInt64(userIDKey)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"message":    msg,
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
	})
}
