package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// CreatePeriodRequest defines a new fiscal period.
type CreatePeriodRequest struct {
	Name         string `json:"name" binding:"max=50"`
	Year         int    `json:"year" binding:"required,min=1900,max=9999"`
	PeriodNumber int    `json:"periodNumber" binding:"required,min=1,max=12"`
	StartDate    string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"endDate" binding:"required,datetime=2006-01-02"`
}

// PeriodResponse defines the data returned for a fiscal period.
type PeriodResponse struct {
	PeriodID     string              `json:"periodID"`
	Name         string              `json:"name"`
	Year         int                 `json:"year"`
	PeriodNumber int                 `json:"periodNumber"`
	StartDate    string              `json:"startDate"`
	EndDate      string              `json:"endDate"`
	Status       domain.PeriodStatus `json:"status"`
	ClosedBy     *string             `json:"closedBy,omitempty"`
	ClosedAt     *time.Time          `json:"closedAt,omitempty"`
	LockedBy     *string             `json:"lockedBy,omitempty"`
	LockedAt     *time.Time          `json:"lockedAt,omitempty"`
}

// PeriodLockResponse answers whether a date is inside a closed or locked period.
type PeriodLockResponse struct {
	Date   string `json:"date"`
	Locked bool   `json:"locked"`
}

// ToPeriodResponse converts a domain.FiscalPeriod to PeriodResponse DTO.
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:     p.PeriodID,
		Name:         p.Name,
		Year:         p.Year,
		PeriodNumber: p.PeriodNumber,
		StartDate:    FormatDate(p.StartDate),
		EndDate:      FormatDate(p.EndDate),
		Status:       p.Status,
		ClosedBy:     p.ClosedBy,
		ClosedAt:     p.ClosedAt,
		LockedBy:     p.LockedBy,
		LockedAt:     p.LockedAt,
	}
}

// ToPeriodResponses converts a slice of periods.
func ToPeriodResponses(periods []domain.FiscalPeriod) []PeriodResponse {
	res := make([]PeriodResponse, len(periods))
	for i := range periods {
		res[i] = ToPeriodResponse(&periods[i])
	}
	return res
}
