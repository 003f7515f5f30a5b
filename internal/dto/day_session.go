package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
)

// OpenDayRequest declares the cash float counted into the drawer at day start.
type OpenDayRequest struct {
	OpeningBalance decimal.Decimal `json:"openingBalance" swaggertype:"string"`
}

// CloseDayRequest declares the cash counted in the drawer at day end.
type CloseDayRequest struct {
	ActualClosing decimal.Decimal `json:"actualClosing" swaggertype:"string"`
}

// DaySessionResponse defines the data returned for a day session.
type DaySessionResponse struct {
	Date            string                  `json:"date"`
	Status          domain.DaySessionStatus `json:"status"`
	OpeningBalance  decimal.Decimal         `json:"openingBalance"`
	ExpectedClosing decimal.Decimal         `json:"expectedClosing"`
	ActualClosing   *decimal.Decimal        `json:"actualClosing,omitempty"`
	Variance        decimal.Decimal         `json:"variance"`
	OpenedAt        time.Time               `json:"openedAt"`
	ClosedAt        *time.Time              `json:"closedAt,omitempty"`
}

// ToDaySessionResponse converts a domain.DaySession to its response DTO.
func ToDaySessionResponse(s domain.DaySession) DaySessionResponse {
	return DaySessionResponse{
		Date:            s.Date,
		Status:          s.Status,
		OpeningBalance:  s.OpeningBalance,
		ExpectedClosing: s.ExpectedClosing,
		ActualClosing:   s.ActualClosing,
		Variance:        s.Variance(),
		OpenedAt:        s.OpenedAt,
		ClosedAt:        s.ClosedAt,
	}
}

// ListDaySessionsResponse wraps all known day sessions.
type ListDaySessionsResponse struct {
	Sessions []DaySessionResponse `json:"sessions"`
}

// AdviceResponse carries advisory text for a day. Available is false when the
// advisor could not be reached; the rest of the response is still valid.
type AdviceResponse struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
	Advice    string `json:"advice,omitempty"`
}
