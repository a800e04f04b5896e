// Package middleware provides the gin middleware of the site: access logging,
// compression, language resolution, visitor analytics, and admin authentication.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// adminKey is the gin context key holding the authenticated admin subject.
const adminKey = "admin_subject"

// TokenValidator validates session tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (SubjectGetter, error)
}

// SubjectGetter exposes the subject of validated claims.
type SubjectGetter interface {
	GetSubject() (string, error)
}

// RequireAdmin rejects requests without a valid admin token. The token is read
// from cookieName, or from an "Authorization: Bearer" header when the cookie is absent.
// Page requests are redirected to loginPath, anything else gets 401.
func RequireAdmin(validator TokenValidator, cookieName, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c, cookieName)
		if token == "" {
			deny(c, loginPath)
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			deny(c, loginPath)
			return
		}

		subject, err := claims.GetSubject()
		if err != nil || subject == "" {
			deny(c, loginPath)
			return
		}

		c.Set(adminKey, subject)
		c.Next()
	}
}

// AdminSubject returns the subject set by RequireAdmin.
func AdminSubject(c *gin.Context) (string, bool) {
	subject := c.GetString(adminKey)
	return subject, subject != ""
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token)
	}

	// Handle case-insensitive "Bearer" prefix
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func deny(c *gin.Context, loginPath string) {
	if c.Request.Method == http.MethodGet {
		c.Redirect(http.StatusFound, loginPath)
		c.Abort()
		return
	}
	c.AbortWithStatus(http.StatusUnauthorized)
}
