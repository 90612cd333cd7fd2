package create_tournament

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	createTournament "github.com/m04kA/SFC-ReservaService/internal/usecase/create_tournament"
)

// TeamRequest команда в HTTP запросе
type TeamRequest struct {
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
}

// CreateTournamentRequest HTTP request model
type CreateTournamentRequest struct {
	Name            string        `json:"name"`
	CustomerID      int64         `json:"customerId"`
	DateStart       string        `json:"dateStart"` // "2025-11-10"
	DateEnd         string        `json:"dateEnd"`   // "2025-11-14"
	MatchesPerDay   int           `json:"matchesPerDay"`
	CourtTypeIDs    []int64       `json:"courtTypeIds"`
	PaymentMethodID int64         `json:"paymentMethodId"`
	Teams           []TeamRequest `json:"teams"`
}

// TeamResponse команда в HTTP ответе
type TeamResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
}

// MatchSlotResponse слот матча в HTTP ответе
type MatchSlotResponse struct {
	SlotID    int64           `json:"slotId"`
	CourtID   int64           `json:"courtId"`
	CourtName string          `json:"courtName"`
	StartTime string          `json:"startTime"`
	Date      string          `json:"date"`
	Price     decimal.Decimal `json:"price"`
}

// TournamentResponse HTTP response model
type TournamentResponse struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	DateStart     string              `json:"dateStart"`
	DateEnd       string              `json:"dateEnd"`
	Teams         []TeamResponse      `json:"teams"`
	TotalMatches  int                 `json:"totalMatches"`
	ReservationID int64               `json:"reservationId"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	PaymentID     int64               `json:"paymentId"`
	Matches       []MatchSlotResponse `json:"matches"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateTournamentRequest) ToUseCaseRequest() (*createTournament.Request, error) {
	dateStart, err := time.Parse(domain.DateFormat, r.DateStart)
	if err != nil {
		return nil, err
	}
	dateEnd, err := time.Parse(domain.DateFormat, r.DateEnd)
	if err != nil {
		return nil, err
	}

	teams := make([]createTournament.TeamRequest, 0, len(r.Teams))
	for _, t := range r.Teams {
		teams = append(teams, createTournament.TeamRequest{
			Name:        t.Name,
			PlayerCount: t.PlayerCount,
		})
	}

	return &createTournament.Request{
		Name:            r.Name,
		CustomerID:      r.CustomerID,
		DateStart:       dateStart,
		DateEnd:         dateEnd,
		MatchesPerDay:   r.MatchesPerDay,
		CourtTypeIDs:    r.CourtTypeIDs,
		PaymentMethodID: r.PaymentMethodID,
		Teams:           teams,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createTournament.Response) *TournamentResponse {
	teams := make([]TeamResponse, 0, len(resp.Teams))
	for _, t := range resp.Teams {
		teams = append(teams, TeamResponse{ID: t.ID, Name: t.Name, PlayerCount: t.PlayerCount})
	}

	matches := make([]MatchSlotResponse, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, MatchSlotResponse{
			SlotID:    m.SlotID,
			CourtID:   m.CourtID,
			CourtName: m.CourtName,
			StartTime: m.StartTime,
			Date:      m.Date.Format(domain.DateFormat),
			Price:     m.Price,
		})
	}

	return &TournamentResponse{
		ID:            resp.ID,
		Name:          resp.Name,
		DateStart:     resp.DateStart.Format(domain.DateFormat),
		DateEnd:       resp.DateEnd.Format(domain.DateFormat),
		Teams:         teams,
		TotalMatches:  resp.TotalMatches,
		ReservationID: resp.ReservationID,
		Status:        resp.Status,
		TotalAmount:   resp.TotalAmount,
		PaymentID:     resp.PaymentID,
		Matches:       matches,
	}
}
