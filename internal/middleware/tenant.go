package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// TenantParam is the route parameter carrying the tenant id.
const TenantParam = "tenant_id"

// RequireTenantAccess rejects requests for tenants absent from the token's tenants claim,
// and rejects writes by actors whose role cannot write.
func RequireTenantAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		tenantID := c.Param(TenantParam)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Tenant ID is required"})
			return
		}

		tenants := tenantsFromContext(c.Request.Context())
		if !slices.Contains(tenants, tenantID) && !slices.Contains(tenants, AllTenants) {
			logger.Warn("Tenant access denied", slog.String("tenant_id", tenantID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access to tenant denied"})
			return
		}

		actor, _ := GetActorFromContext(c)
		if c.Request.Method != http.MethodGet && !actor.Role.CanWrite() {
			logger.Warn("Actor without write access attempted a write", slog.String("tenant_id", tenantID), slog.String("role", string(actor.Role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Read-only access"})
			return
		}

		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), logger.With(slog.String("tenant_id", tenantID))))
		c.Next()
	}
}
