package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler serves manual reconciliation runs and their alerts.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	reconciliation := rg.Group("/reconciliation")
	{
		reconciliation.POST("/runs", h.runReconciliation)
		reconciliation.GET("/status", h.getStatus)
	}
	alerts := rg.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.POST("/:alert_id/resolve", h.resolveAlert)
	}
}

// runReconciliation godoc
// @Summary Run reconciliation now
// @Description Compares every subledger with its control accounts and raises alerts for variances
// @Tags reconciliation
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.ReconcileResponse
// @Failure 404 {object} dto.ErrorResponse "Control account missing"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reconciliation/runs [post]
func (h *reconciliationHandler) runReconciliation(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	checks, err := h.reconciliationService.Reconcile(c.Request.Context(), scope.tenantID, scope.actor)
	if err != nil {
		respondError(c, scope.logger, err, "run reconciliation")
		return
	}

	resp := dto.ToReconcileResponse(checks)
	scope.logger.Info("Reconciliation completed", slog.String("status", resp.Status), slog.Int("check_count", len(checks)))
	c.JSON(http.StatusOK, resp)
}

// getStatus godoc
// @Summary Latest reconciliation status
// @Tags reconciliation
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {object} domain.ReconciliationSummary
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reconciliation/status [get]
func (h *reconciliationHandler) getStatus(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	summary, err := h.reconciliationService.GetLatestReconciliationStatus(c.Request.Context(), scope.tenantID)
	if err != nil {
		respondError(c, scope.logger, err, "retrieve reconciliation status")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// listAlerts godoc
// @Summary List reconciliation alerts
// @Tags reconciliation
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param status query string false "open (default) or all"
// @Success 200 {array} domain.Alert
// @Security BearerAuth
// @Router /tenants/{tenant_id}/alerts [get]
func (h *reconciliationHandler) listAlerts(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var params dto.ListAlertsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, scope.logger, err, "query parameters")
		return
	}

	alerts, err := h.reconciliationService.ListAlerts(c.Request.Context(), scope.tenantID, params.Status != "all")
	if err != nil {
		respondError(c, scope.logger, err, "list alerts")
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// resolveAlert godoc
// @Summary Resolve an alert
// @Tags reconciliation
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param alert_id path string true "Alert ID"
// @Param resolution body dto.ResolveAlertRequest true "Resolution notes"
// @Success 200 {object} domain.Alert
// @Failure 404 {object} dto.ErrorResponse "Alert not found"
// @Failure 409 {object} dto.ErrorResponse "Alert already resolved"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/alerts/{alert_id}/resolve [post]
func (h *reconciliationHandler) resolveAlert(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	alertID := c.Param("alert_id")
	var req dto.ResolveAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, scope.logger, err, "request format")
		return
	}
	logger := scope.logger.With(slog.String("alert_id", alertID))

	alert, err := h.reconciliationService.ResolveAlert(c.Request.Context(), scope.tenantID, alertID, req.Notes, scope.actor)
	if err != nil {
		respondError(c, logger, err, "resolve alert")
		return
	}

	logger.Info("Alert resolved")
	c.JSON(http.StatusOK, alert)
}
