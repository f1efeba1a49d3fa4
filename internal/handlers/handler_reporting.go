package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
		reportingGroup.GET("/cash-position", h.getCashPosition)
		reportingGroup.GET("/ar-aging", h.aging("AR aging", reportingService.GetARAging))
		reportingGroup.GET("/ap-aging", h.aging("AP aging", reportingService.GetAPAging))
	}
}

// asOfFromQuery binds the asOf parameter, defaulting to today.
func asOfFromQuery(c *gin.Context, scope requestScope) (time.Time, bool) {
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, scope.logger, err, "query parameters")
		return time.Time{}, false
	}
	asOf, err := dateOrToday("asOf", params.AsOf)
	if err != nil {
		bindError(c, scope.logger, err, "query parameters")
		return time.Time{}, false
	}
	return asOf, true
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Sums posted debits and credits per account as of a date. Reversed pairs are excluded.
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	asOf, ok := asOfFromQuery(c, scope)
	if !ok {
		return
	}

	tb, err := h.reportingService.GetTrialBalance(c.Request.Context(), scope.tenantID, asOf)
	if err != nil {
		respondError(c, scope.logger, err, "generate trial balance report")
		return
	}

	scope.logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(tb.Rows)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Revenue, cost of goods sold and expenses posted within an inclusive date range
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 422 {object} dto.ErrorResponse "to is before from"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, scope.logger, err, "query parameters")
		return
	}
	from, err := dto.ParseDate("from", params.From)
	if err != nil {
		bindError(c, scope.logger, err, "query parameters")
		return
	}
	to, err := dto.ParseDate("to", params.To)
	if err != nil {
		bindError(c, scope.logger, err, "query parameters")
		return
	}

	pl, err := h.reportingService.GetProfitAndLoss(c.Request.Context(), scope.tenantID, from, to)
	if err != nil {
		respondError(c, scope.logger, err, "generate profit and loss report")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(pl))
}

// getCashPosition godoc
// @Summary Cash position
// @Description Balance of CASH and BANK accounts as of a date
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.CashPositionResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/cash-position [get]
func (h *reportingHandler) getCashPosition(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	asOf, ok := asOfFromQuery(c, scope)
	if !ok {
		return
	}

	cp, err := h.reportingService.GetCashPosition(c.Request.Context(), scope.tenantID, asOf)
	if err != nil {
		respondError(c, scope.logger, err, "generate cash position report")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashPositionResponse(cp))
}

// aging godoc
// @Summary Receivables or payables aging
// @Description Buckets control account lines into current, 31-60, 61-90 and over 90 days
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.AgingReportResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/ar-aging [get]
// @Router /tenants/{tenant_id}/reports/ap-aging [get]
func (h *reportingHandler) aging(name string, generate func(ctx context.Context, tenantID string, asOf time.Time) (*domain.AgingReport, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := scopeFromContext(c)
		if !ok {
			return
		}
		asOf, ok := asOfFromQuery(c, scope)
		if !ok {
			return
		}

		report, err := generate(c.Request.Context(), scope.tenantID, asOf)
		if err != nil {
			respondError(c, scope.logger, err, "generate "+name+" report")
			return
		}
		c.JSON(http.StatusOK, dto.ToAgingReportResponse(report))
	}
}
