package metrics_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.EntryPosted("entry")
		m.PostRejected(apperrors.ErrUnbalancedEntry)
		m.PostRetried()
		m.ReconciliationCompleted("balanced", time.Second, nil)
		m.HTTPStarted()
		m.HTTPFinished("GET", "/health", "200", time.Millisecond)
	})
}

func TestCountersAreExported(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.EntryPosted("entry")
	m.EntryPosted("entry")
	m.EntryPosted("reversal")
	m.PostRejected(fmt.Errorf("post: %w", apperrors.ErrPeriodLocked))
	m.ReconciliationCompleted("mismatch", 20*time.Millisecond, map[string]string{"ar_mismatch": "MEDIUM"})

	count, err := testutil.GatherAndCount(reg, "ledger_entries_posted_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per kind")

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `ledger_entries_posted_total{kind="entry"} 2`)
	assert.Contains(t, body, `ledger_post_rejections_total{reason="period_locked"} 1`)
	assert.Contains(t, body, `ledger_reconciliation_alerts_total{check_type="ar_mismatch",severity="MEDIUM"} 1`)
}

func TestRejectionReason(t *testing.T) {
	assert.Equal(t, "validation", metrics.RejectionReason(apperrors.NewValidationError("x")))
	assert.Equal(t, "already_posted", metrics.RejectionReason(apperrors.ErrAlreadyPosted))
	assert.Equal(t, "internal", metrics.RejectionReason(fmt.Errorf("boom")))
}
