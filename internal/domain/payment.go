package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Payment binds one reservation to one payment method.
// Exactly one payment is created per reservation at booking time.
type Payment struct {
	ID              int64
	ReservationID   int64
	PaymentMethodID int64
	Amount          decimal.Decimal
	PaymentDate     time.Time
}

// CashMethodMarker подстрока в описании метода оплаты, означающая наличный расчет.
// Резервации с такими методами создаются в статусе pendiente и подтверждаются
// оплатой на месте; все остальные методы считаются оплаченными сразу.
const CashMethodMarker = "efectivo"

// InitialStatusForMethod возвращает начальный статус резервации
// в зависимости от метода оплаты
func InitialStatusForMethod(method *PaymentMethod) ReservationStatus {
	if strings.Contains(strings.ToLower(method.Description), CashMethodMarker) {
		return StatusPending
	}
	return StatusPaid
}
