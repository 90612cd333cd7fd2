package scheduler

import (
	"time"

	"github.com/shopspring/decimal"
)

// SelectedSlot слот, выбранный планировщиком под один матч турнира
type SelectedSlot struct {
	SlotID     int64
	CourtID    int64
	ScheduleID int64
	CourtName  string
	StartTime  string
	Date       time.Time
	Price      decimal.Decimal
}

// Availability результат проверки осуществимости турнира в окне дат.
// EstimatedAmount считается по ценам именно тех слотов, которые были бы выбраны.
type Availability struct {
	Feasible        bool
	Available       int
	Needed          int
	EstimatedAmount decimal.Decimal
}

// SelectParams параметры подбора слотов под турнир
type SelectParams struct {
	DateStart     time.Time
	DateEnd       time.Time
	MatchesPerDay int
	TotalMatches  int
	TeamCount     int
	CourtTypeIDs  []int64
}
