package models

import "time"

// FiscalPeriod is a row of the fiscal_periods table.
type FiscalPeriod struct {
	PeriodID     string     `db:"period_id"`
	TenantID     string     `db:"tenant_id"`
	Name         string     `db:"name"`
	Year         int        `db:"fiscal_year"`
	PeriodNumber int        `db:"period_number"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      time.Time  `db:"end_date"`
	Status       string     `db:"status"`
	ClosedBy     *string    `db:"closed_by"`
	ClosedAt     *time.Time `db:"closed_at"`
	LockedBy     *string    `db:"locked_by"`
	LockedAt     *time.Time `db:"locked_at"`
	AuditFields
}
