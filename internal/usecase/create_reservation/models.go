package create_reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest одна позиция резервации: корт + горизонт расписания + дата.
// Дата задается на каждую позицию, одна резервация может покрывать слоты
// на разные дни
type ItemRequest struct {
	CourtID    int64     // ID корта
	ScheduleID int64     // ID горизонта расписания
	Date       time.Time // Дата слота (без времени)
}

// Request модель запроса на создание резервации
type Request struct {
	CustomerID      int64         // ID клиента
	PaymentMethodID int64         // ID метода оплаты
	Items           []ItemRequest // Позиции резервации
}

// ItemResponse созданная позиция с зафиксированной ценой
type ItemResponse struct {
	ID         int64           // ID позиции
	SlotID     int64           // ID выкупленного слота
	CourtID    int64           // ID корта
	ScheduleID int64           // ID горизонта расписания
	Date       time.Time       // Дата слота
	Price      decimal.Decimal // Цена на момент бронирования
}

// Response модель ответа с созданной резервацией
type Response struct {
	ID              int64           // ID резервации
	CustomerID      int64           // ID клиента
	TotalAmount     decimal.Decimal // Итоговая сумма
	ReservationDate time.Time       // Дата резервации (самая ранняя дата слота)
	Status          string          // Начальный статус (зависит от метода оплаты)
	Items           []ItemResponse  // Позиции
	PaymentID       int64           // ID созданного платежа
	CreatedAt       time.Time       // Время создания
}
