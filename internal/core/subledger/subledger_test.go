package subledger_test

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/core/subledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryFromStaticSource(t *testing.T) {
	src := subledger.NewStaticSource()
	src.SetReceivables("t-1", decimal.RequireFromString("1335.00"))

	reg := subledger.FromSource(src)
	sls := reg.Subledgers()
	require.Len(t, sls, 2)

	ar := sls[0]
	assert.Equal(t, "accounts_receivable", ar.Name())
	assert.Equal(t, subledger.CheckReceivables, ar.CheckType())
	assert.Equal(t, domain.CategoryReceivable, ar.ControlCategory())

	total, err := ar.Total(context.Background(), "t-1")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("1335")))

	total, err = sls[1].Total(context.Background(), "t-1")
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "unset tenants have an empty subledger")
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	zero := func(context.Context, string) (decimal.Decimal, error) { return decimal.Zero, nil }

	_, err := subledger.NewRegistry(subledger.Receivables(zero), subledger.Receivables(zero))
	assert.Error(t, err)

	_, err = subledger.NewRegistry(
		subledger.New("invoices", "ar_mismatch", domain.CategoryReceivable, zero),
		subledger.New("credit_notes", "ar_mismatch", domain.CategoryReceivable, zero),
	)
	assert.Error(t, err)

	var nilReg *subledger.Registry
	assert.Empty(t, nilReg.Subledgers())
}
