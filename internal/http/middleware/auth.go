package middleware

import (
	"net/http"
	"strings"

	"abarto-backend/internal/domain"
	"abarto-backend/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	roleKey      = "principalRole"
)

// Protect rejects requests without a verifiable bearer token. The principal
// is reloaded fresh from the store on every request so a deleted admin loses
// access even while the token is unexpired.
func Protect(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims := auth.VerifyToken(strings.TrimSpace(token))
		if claims == nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		principal, err := auth.PrincipalByID(c.Request.Context(), claims.AdminID)
		if err != nil {
			if domain.IsNotFound(err) {
				abortUnauthorized(c, "invalid or expired token")
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "could not load principal",
			})
			return
		}

		c.Set(principalKey, principal)
		if role, ok := principal["role"].(string); ok {
			c.Set(roleKey, role)
		}
		c.Next()
	}
}

// RequireRoles gates an already-authenticated request on the principal's
// role. Example:
//
//	admins.Use(middleware.Protect(auth), middleware.RequireRoles("admin"))
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := strings.ToLower(strings.TrimSpace(c.GetString(roleKey)))
		if role == "" {
			abortUnauthorized(c, "no role on request context")
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "role not allowed",
			})
			return
		}
		c.Next()
	}
}

// Principal returns the admin record attached by Protect.
func Principal(c *gin.Context) (domain.Record, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	rec, ok := v.(domain.Record)
	return rec, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   msg,
	})
}
