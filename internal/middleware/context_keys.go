package middleware

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey  = contextKey("userID")
	roleKey    = contextKey("role")
	tenantsKey = contextKey("tenants")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetActorFromContext builds the acting user from the authenticated claims.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	role, _ := c.Request.Context().Value(roleKey).(domain.ActorRole)
	if role == "" {
		role = domain.RoleReadOnly
	}
	return domain.Actor{UserID: userID, Role: role}, true
}

func tenantsFromContext(ctx context.Context) []string {
	tenants, _ := ctx.Value(tenantsKey).([]string)
	return tenants
}

// WithIdentity stores the authenticated identity in ctx. Used by AuthMiddleware and tests.
func WithIdentity(ctx context.Context, userID string, role domain.ActorRole, tenants []string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, roleKey, role)
	return context.WithValue(ctx, tenantsKey, tenants)
}
