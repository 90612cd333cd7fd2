package create_tournament

import (
	"time"

	"github.com/shopspring/decimal"
)

// TeamRequest команда-участница турнира
type TeamRequest struct {
	Name        string // Название команды, уникально в рамках турнира
	PlayerCount int    // Число игроков
}

// Request модель запроса на создание турнира
type Request struct {
	Name            string        // Название турнира
	CustomerID      int64         // ID клиента-организатора
	DateStart       time.Time     // Начало окна турнира
	DateEnd         time.Time     // Конец окна турнира (включительно)
	MatchesPerDay   int           // Желаемый темп: матчей в день
	CourtTypeIDs    []int64       // Допустимые типы кортов
	PaymentMethodID int64         // ID метода оплаты
	Teams           []TeamRequest // Команды, минимум две
}

// TeamResponse созданная команда
type TeamResponse struct {
	ID          int64
	Name        string
	PlayerCount int
}

// MatchSlot слот, выкупленный под один матч
type MatchSlot struct {
	SlotID    int64
	CourtID   int64
	CourtName string
	StartTime string // "HH:MM"
	Date      time.Time
	Price     decimal.Decimal
}

// Response модель ответа с созданным турниром и его резервацией
type Response struct {
	ID            int64           // ID турнира
	Name          string          // Название
	DateStart     time.Time       // Начало окна
	DateEnd       time.Time       // Конец окна
	Teams         []TeamResponse  // Команды
	TotalMatches  int             // Число матчей кругового турнира
	ReservationID int64           // ID связанной резервации
	Status        string          // Начальный статус резервации
	TotalAmount   decimal.Decimal // Итоговая сумма по ценам слотов
	PaymentID     int64           // ID платежа
	Matches       []MatchSlot     // Слоты матчей
}
