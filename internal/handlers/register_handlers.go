package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil gatherer leaves /metrics unregistered.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	gatherer prometheus.Gatherer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))
	}

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	// Every ledger resource is scoped to one tenant.
	tenant := v1.Group("/tenants/:"+middleware.TenantParam, middleware.RequireTenantAccess())

	registerAccountRoutes(tenant, service.Account)
	registerJournalRoutes(tenant, service.Journal, service.Posting)
	registerFiscalRoutes(tenant, service.Fiscal)
	registerReportingRoutes(tenant, service.Reporting)
	registerReconciliationRoutes(tenant, service.Reconciliation)
}
