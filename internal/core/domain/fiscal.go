package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
)

// PeriodStatus is the lifecycle state of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED" // terminal
)

// FiscalPeriod is a dated accounting window of a tenant.
type FiscalPeriod struct {
	PeriodID     string       `json:"periodID"`
	TenantID     string       `json:"tenantID"`
	Name         string       `json:"name"`
	Year         int          `json:"year"`
	PeriodNumber int          `json:"periodNumber"`
	StartDate    time.Time    `json:"startDate"`
	EndDate      time.Time    `json:"endDate"` // inclusive
	Status       PeriodStatus `json:"status"`
	ClosedBy     *string      `json:"closedBy,omitempty"`
	ClosedAt     *time.Time   `json:"closedAt,omitempty"`
	LockedBy     *string      `json:"lockedBy,omitempty"`
	LockedAt     *time.Time   `json:"lockedAt,omitempty"`
	AuditFields
}

// Validate checks period number and date range.
func (p FiscalPeriod) Validate() error {
	if p.PeriodNumber < 1 || p.PeriodNumber > 12 {
		return apperrors.NewValidationError("period number must be between 1 and 12, got %d", p.PeriodNumber)
	}
	if p.Year < 1900 || p.Year > 9999 {
		return apperrors.NewValidationError("invalid fiscal year %d", p.Year)
	}
	if !DateOf(p.EndDate).After(DateOf(p.StartDate)) {
		return apperrors.NewValidationError("period end date must be after start date")
	}
	return nil
}

// Contains reports whether the date falls inside the period (inclusive on both ends).
func (p FiscalPeriod) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(DateOf(p.StartDate)) && !d.After(DateOf(p.EndDate))
}

// Overlaps reports whether the two date ranges intersect.
func (p FiscalPeriod) Overlaps(start, end time.Time) bool {
	return !DateOf(start).After(DateOf(p.EndDate)) && !DateOf(end).Before(DateOf(p.StartDate))
}

// IsLocked reports whether writes dated inside the period are rejected.
func (p FiscalPeriod) IsLocked() bool {
	return p.Status == PeriodClosed || p.Status == PeriodLocked
}

// Next returns the month-long OPEN period following p.
func (p FiscalPeriod) Next() FiscalPeriod {
	start := DateOf(p.EndDate).AddDate(0, 0, 1)
	end := start.AddDate(0, 1, -1)
	number := p.PeriodNumber%12 + 1
	year := p.Year
	if number == 1 {
		year++
	}
	return FiscalPeriod{
		TenantID:     p.TenantID,
		Name:         PeriodName(year, number),
		Year:         year,
		PeriodNumber: number,
		StartDate:    start,
		EndDate:      end,
		Status:       PeriodOpen,
	}
}

// PeriodName is the default display name, e.g. FY2026-P03.
func PeriodName(year, number int) string {
	return fmt.Sprintf("FY%d-P%02d", year, number)
}
