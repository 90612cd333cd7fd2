package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
)

// itemKey ключ уникальности позиции: один и тот же слот нельзя
// запросить дважды в одной резервации
type itemKey struct {
	courtID    int64
	scheduleID int64
	date       string
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.PaymentMethodID <= 0 {
		return fmt.Errorf("%w: paymentMethodID must be positive", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}

	seen := make(map[itemKey]struct{}, len(req.Items))
	for i, item := range req.Items {
		if item.CourtID <= 0 {
			return fmt.Errorf("%w: items[%d].courtID must be positive", ErrInvalidInput, i)
		}
		if item.ScheduleID <= 0 {
			return fmt.Errorf("%w: items[%d].scheduleID must be positive", ErrInvalidInput, i)
		}
		if item.Date.IsZero() {
			return fmt.Errorf("%w: items[%d].date is required", ErrInvalidInput, i)
		}
		key := itemKey{item.CourtID, item.ScheduleID, domain.DateOnly(item.Date).Format(domain.DateFormat)}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: items[%d] duplicates court=%d schedule=%d date=%s",
				ErrInvalidInput, i, item.CourtID, item.ScheduleID, key.date)
		}
		seen[key] = struct{}{}
	}

	return nil
}

// validateDate проверяет, что дата слота не в прошлом.
// Сравнение календарное, обе стороны нормализуются через DateOnly
func validateDate(date, now time.Time) error {
	if domain.DateBefore(date, now) {
		return ErrInvalidDate
	}
	return nil
}
