package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"lumijob/pkg/utils"
)

const (
	ContextEmail = "email"
	ContextRole  = "role"

	RoleAdmin = "admin"
)

// RoleResolver returns the role stored on the caller's account. Tokens only
// carry identity, except for the admin claim.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (string, error)
}

// TokenValidator is satisfied by *utils.JWTManager.
type TokenValidator interface {
	ValidateToken(token string) (*utils.Claims, error)
}

func JWTAuthMiddleware(validator TokenValidator) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextEmail, strings.ToLower(claims.Email))
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RoleMiddleware admits callers whose stored account role is one of roles.
// Admin tokens pass every role check.
func RoleMiddleware(resolver RoleResolver, roles ...string) gin.HandlerFunc {

	return func(c *gin.Context) {
		if c.GetString(ContextRole) == RoleAdmin {
			c.Next()
			return
		}
		role, err := resolver.ResolveRole(c.Request.Context(), c.GetString(ContextEmail))
		if err != nil {
			utils.HandleServiceError(c, err)
			c.Abort()
			return
		}
		for _, r := range roles {
			if role == r {
				c.Set(ContextRole, role)
				c.Next()
				return
			}
		}
		utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
		c.Abort()
	}
}

// AdminOnly admits tokens carrying the admin claim.
func AdminOnly() gin.HandlerFunc {

	return func(c *gin.Context) {
		if c.GetString(ContextRole) != RoleAdmin {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SameEmail reports whether the authenticated caller is email, or an admin.
func SameEmail(c *gin.Context, email string) bool {
	if c.GetString(ContextRole) == RoleAdmin {
		return true
	}
	return strings.EqualFold(c.GetString(ContextEmail), strings.TrimSpace(email))
}
