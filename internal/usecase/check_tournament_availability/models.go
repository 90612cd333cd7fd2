package check_tournament_availability

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса проверки осуществимости турнира
type Request struct {
	TeamCount     int       // Число команд, минимум две
	DateStart     time.Time // Начало окна турнира
	DateEnd       time.Time // Конец окна турнира (включительно)
	MatchesPerDay int       // Желаемый темп: матчей в день
	CourtTypeIDs  []int64   // Допустимые типы кортов
}

// Response отчет об осуществимости без бронирования
type Response struct {
	Feasible         bool            // Хватает ли слотов на все матчи
	TotalMatches     int             // Число матчей кругового турнира
	AvailableSlots   int             // Сколько слотов нашел бы планировщик
	DaysNeeded       int             // Минимум дней при заданном темпе
	MaxMatchesPerDay int             // Физическая вместимость площадки в день
	EstimatedAmount  decimal.Decimal // Оценка суммы по ценам выбранных слотов
}
