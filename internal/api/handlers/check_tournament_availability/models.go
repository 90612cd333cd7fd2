package check_tournament_availability

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	checkAvailability "github.com/m04kA/SFC-ReservaService/internal/usecase/check_tournament_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	TeamCount     int     `json:"teamCount"`
	DateStart     string  `json:"dateStart"` // "2025-11-10"
	DateEnd       string  `json:"dateEnd"`   // "2025-11-14"
	MatchesPerDay int     `json:"matchesPerDay"`
	CourtTypeIDs  []int64 `json:"courtTypeIds"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Feasible         bool            `json:"feasible"`
	TotalMatches     int             `json:"totalMatches"`
	AvailableSlots   int             `json:"availableSlots"`
	DaysNeeded       int             `json:"daysNeeded"`
	MaxMatchesPerDay int             `json:"maxMatchesPerDay"`
	EstimatedAmount  decimal.Decimal `json:"estimatedAmount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
	dateStart, err := time.Parse(domain.DateFormat, r.DateStart)
	if err != nil {
		return nil, err
	}
	dateEnd, err := time.Parse(domain.DateFormat, r.DateEnd)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		TeamCount:     r.TeamCount,
		DateStart:     dateStart,
		DateEnd:       dateEnd,
		MatchesPerDay: r.MatchesPerDay,
		CourtTypeIDs:  r.CourtTypeIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Feasible:         resp.Feasible,
		TotalMatches:     resp.TotalMatches,
		AvailableSlots:   resp.AvailableSlots,
		DaysNeeded:       resp.DaysNeeded,
		MaxMatchesPerDay: resp.MaxMatchesPerDay,
		EstimatedAmount:  resp.EstimatedAmount,
	}
}
