package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// fiscalHandler serves the fiscal calendar.
type fiscalHandler struct {
	fiscalService portssvc.FiscalSvcFacade
}

func newFiscalHandler(fs portssvc.FiscalSvcFacade) *fiscalHandler {
	return &fiscalHandler{fiscalService: fs}
}

// registerFiscalRoutes registers routes related to fiscal periods.
func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalSvcFacade) {
	h := newFiscalHandler(fiscalService)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/locked", h.isLocked)
		periods.POST("/:period_id/close", h.transition("close", fiscalService.ClosePeriod))
		periods.POST("/:period_id/reopen", h.transition("reopen", fiscalService.ReopenPeriod))
		periods.POST("/:period_id/lock", h.transition("lock", fiscalService.LockPeriod))
	}
}

// createPeriod godoc
// @Summary Create a fiscal period
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 422 {object} dto.ErrorResponse "Invalid or overlapping period"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/periods [post]
func (h *fiscalHandler) createPeriod(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, scope.logger, err, "request format")
		return
	}

	period, err := h.fiscalService.CreatePeriod(c.Request.Context(), scope.tenantID, req, scope.actor)
	if err != nil {
		respondError(c, scope.logger, err, "create fiscal period")
		return
	}

	scope.logger.Info("Fiscal period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List fiscal periods
// @Tags periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {array} dto.PeriodResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/periods [get]
func (h *fiscalHandler) listPeriods(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	periods, err := h.fiscalService.ListPeriods(c.Request.Context(), scope.tenantID)
	if err != nil {
		respondError(c, scope.logger, err, "list fiscal periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// isLocked godoc
// @Summary Check whether a date is closed for writes
// @Tags periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.PeriodLockResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/periods/locked [get]
func (h *fiscalHandler) isLocked(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	date, err := dto.ParseDate("date", c.Query("date"))
	if err != nil {
		bindError(c, scope.logger, err, "date")
		return
	}

	locked, err := h.fiscalService.IsLocked(c.Request.Context(), scope.tenantID, date)
	if err != nil {
		respondError(c, scope.logger, err, "check fiscal period")
		return
	}
	c.JSON(http.StatusOK, dto.PeriodLockResponse{Date: dto.FormatDate(date), Locked: locked})
}

// transition godoc
// @Summary Close, reopen or lock a fiscal period
// @Description Closing the last open period opens the next one. Reopen and lock require the admin role. LOCKED is terminal.
// @Tags periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 409 {object} dto.ErrorResponse "Period is locked"
// @Failure 422 {object} dto.ErrorResponse "Transition not allowed from the current status"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/periods/{period_id}/close [post]
// @Router /tenants/{tenant_id}/periods/{period_id}/reopen [post]
// @Router /tenants/{tenant_id}/periods/{period_id}/lock [post]
func (h *fiscalHandler) transition(action string, apply func(ctx context.Context, tenantID, periodID string, actor domain.Actor) (*domain.FiscalPeriod, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := scopeFromContext(c)
		if !ok {
			return
		}
		periodID := c.Param("period_id")
		logger := scope.logger.With(slog.String("period_id", periodID), slog.String("action", action))

		period, err := apply(c.Request.Context(), scope.tenantID, periodID, scope.actor)
		if err != nil {
			respondError(c, logger, err, action+" fiscal period")
			return
		}

		logger.Info("Fiscal period transitioned", slog.String("status", string(period.Status)))
		c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
	}
}
