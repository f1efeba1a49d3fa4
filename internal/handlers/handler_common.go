package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requestScope is the tenant and actor every ledger route runs under.
type requestScope struct {
	tenantID string
	actor    domain.Actor
	logger   *slog.Logger
}

// scopeFromContext reads the tenant path parameter and the authenticated actor.
// It writes the error response and returns false when either is missing.
func scopeFromContext(c *gin.Context) (requestScope, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return requestScope{}, false
	}
	tenantID := c.Param(middleware.TenantParam)
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Tenant ID required in path"})
		return requestScope{}, false
	}
	return requestScope{tenantID: tenantID, actor: actor, logger: logger}, true
}

// respondError maps err to its HTTP status. Server errors hide their message.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	status := apperrors.HTTPStatus(err)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: "Failed to " + action})
	case apperrors.IsLogicBug(err):
		logger.Error("Rejected attempt to "+action, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
	default:
		logger.Warn("Rejected attempt to "+action, slog.String("error", err.Error()), slog.Int("status", status))
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
	}
}

// bindError answers a request whose body or query failed binding.
func bindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}

// dateOrToday parses an optional YYYY-MM-DD query value, defaulting to the current UTC date.
func dateOrToday(field, value string) (time.Time, error) {
	if value == "" {
		return domain.DateOf(time.Now()), nil
	}
	return dto.ParseDate(field, value)
}
