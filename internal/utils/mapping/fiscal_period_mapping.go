package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:     d.PeriodID,
		TenantID:     d.TenantID,
		Name:         d.Name,
		Year:         d.Year,
		PeriodNumber: d.PeriodNumber,
		StartDate:    domain.DateOf(d.StartDate),
		EndDate:      domain.DateOf(d.EndDate),
		Status:       string(d.Status),
		ClosedBy:     d.ClosedBy,
		ClosedAt:     d.ClosedAt,
		LockedBy:     d.LockedBy,
		LockedAt:     d.LockedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:     m.PeriodID,
		TenantID:     m.TenantID,
		Name:         m.Name,
		Year:         m.Year,
		PeriodNumber: m.PeriodNumber,
		StartDate:    domain.DateOf(m.StartDate),
		EndDate:      domain.DateOf(m.EndDate),
		Status:       domain.PeriodStatus(m.Status),
		ClosedBy:     m.ClosedBy,
		ClosedAt:     utcPtr(m.ClosedAt),
		LockedBy:     m.LockedBy,
		LockedAt:     utcPtr(m.LockedAt),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFiscalPeriodSlice converts a slice of model FiscalPeriods
func ToDomainFiscalPeriodSlice(ms []models.FiscalPeriod) []domain.FiscalPeriod {
	ds := make([]domain.FiscalPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFiscalPeriod(m)
	}
	return ds
}
