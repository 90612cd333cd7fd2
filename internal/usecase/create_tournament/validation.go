package create_tournament

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.PaymentMethodID <= 0 {
		return fmt.Errorf("%w: paymentMethodID must be positive", ErrInvalidInput)
	}

	if req.DateStart.IsZero() || req.DateEnd.IsZero() {
		return fmt.Errorf("%w: dateStart and dateEnd are required", ErrInvalidInput)
	}

	if req.MatchesPerDay <= 0 {
		return fmt.Errorf("%w: matchesPerDay must be positive", ErrInvalidInput)
	}

	if len(req.CourtTypeIDs) == 0 {
		return fmt.Errorf("%w: at least one court type is required", ErrInvalidInput)
	}
	for i, id := range req.CourtTypeIDs {
		if id <= 0 {
			return fmt.Errorf("%w: courtTypeIDs[%d] must be positive", ErrInvalidInput, i)
		}
	}

	if len(req.Teams) < 2 {
		return fmt.Errorf("%w: at least two teams are required", ErrInvalidInput)
	}

	names := make(map[string]struct{}, len(req.Teams))
	for i, team := range req.Teams {
		name := strings.TrimSpace(team.Name)
		if name == "" {
			return fmt.Errorf("%w: teams[%d].name is required", ErrInvalidInput, i)
		}
		if team.PlayerCount <= 0 {
			return fmt.Errorf("%w: teams[%d].playerCount must be positive", ErrInvalidInput, i)
		}
		key := strings.ToLower(name)
		if _, ok := names[key]; ok {
			return fmt.Errorf("%w: duplicate team name %q", ErrInvalidInput, name)
		}
		names[key] = struct{}{}
	}

	return nil
}

// validateDates проверяет порядок дат и что начало турнира не в прошлом.
// Сравнение календарное, обе стороны нормализуются через DateOnly
func validateDates(dateStart, dateEnd, now time.Time) error {
	if domain.DateBefore(dateEnd, dateStart) {
		return ErrInvalidDate
	}
	if domain.DateBefore(dateStart, now) {
		return ErrInvalidDate
	}
	return nil
}
