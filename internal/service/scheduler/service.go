package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
)

// Service планировщик турнирных слотов.
// Жадно распределяет матчи по окну дат, приоритизируя одновременные матчи
// (один горизонт, разные корты) над последовательными (один корт, разные
// горизонты): сначала заполняется весь ряд кортов в самом раннем горизонте дня,
// потом планировщик переходит к следующему горизонту.
type Service struct {
	slotRepo SlotRepository
	catalog  CatalogRepository
	pricing  PricingService
	logger   Logger
}

// NewService создает новый экземпляр планировщика
func NewService(slotRepo SlotRepository, catalog CatalogRepository, pricing PricingService, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		catalog:  catalog,
		pricing:  pricing,
		logger:   logger,
	}
}

// TotalMatches возвращает общее число матчей турнира "каждый с каждым"
func (s *Service) TotalMatches(teamCount int) int {
	return domain.TotalRoundRobinMatches(teamCount)
}

// DaysNeeded возвращает минимальное число дней под totalMatches матчей
// при matchesPerDay матчах в день
func (s *Service) DaysNeeded(totalMatches, matchesPerDay int) int {
	if matchesPerDay <= 0 {
		return 0
	}
	return (totalMatches + matchesPerDay - 1) / matchesPerDay
}

// MaxMatchesPerDay возвращает максимум матчей в день:
// число кортов (опционально отфильтрованных по типам) x число горизонтов,
// ограниченное сверху (teamCount/2) x число горизонтов, если известно
// количество команд - одновременно играет не больше половины команд.
func (s *Service) MaxMatchesPerDay(ctx context.Context, teamCount int, courtTypeIDs []int64) (int, error) {
	courts, err := s.catalog.ListCourts(ctx, courtTypeIDs)
	if err != nil {
		return 0, fmt.Errorf("%w: MaxMatchesPerDay - list courts: %v", ErrInternal, err)
	}

	schedules, err := s.catalog.ListSchedules(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: MaxMatchesPerDay - list schedules: %v", ErrInternal, err)
	}

	maxSlots := len(courts) * len(schedules)
	if teamCount <= 0 {
		return maxSlots, nil
	}

	maxByTeams := domain.MaxSimultaneousMatches(teamCount) * len(schedules)
	if maxByTeams < maxSlots {
		return maxByTeams, nil
	}
	return maxSlots, nil
}

// SelectSlots жадно подбирает слоты под матчи турнира день за днем.
// На каждую дату окна лениво материализуются строки слотов, затем доступные
// слоты группируются по времени начала; в каждом горизонте берется не больше
// min(teamCount/2, остаток дня, остаток турнира) кортов. День без доступных
// слотов пропускается. Если к концу окна матчей размещено меньше, чем
// totalMatches, возвращается укороченный список - недобор детектирует
// вызывающий код.
func (s *Service) SelectSlots(ctx context.Context, params SelectParams) ([]*SelectedSlot, error) {
	if params.TotalMatches <= 0 || params.MatchesPerDay <= 0 || params.TeamCount < 2 {
		return nil, ErrInvalidInput
	}
	if params.DateEnd.Before(params.DateStart) {
		return nil, ErrInvalidInput
	}

	maxSimultaneous := domain.MaxSimultaneousMatches(params.TeamCount)

	// Цена зависит только от корта, кэшируем на время подбора
	priceByCourt := make(map[int64]decimal.Decimal)

	selected := make([]*SelectedSlot, 0, params.TotalMatches)
	assigned := 0

	dateStart := domain.DateOnly(params.DateStart)
	dateEnd := domain.DateOnly(params.DateEnd)

	for date := dateStart; assigned < params.TotalMatches && !date.After(dateEnd); date = date.AddDate(0, 0, 1) {
		daySlots, err := s.availableSlotsForDate(ctx, date, params.CourtTypeIDs)
		if err != nil {
			return nil, err
		}
		if len(daySlots) == 0 {
			continue
		}

		groups, times := groupByStartTime(daySlots)

		assignedToday := 0
		for _, startTime := range times {
			quota := maxSimultaneous
			if rest := params.MatchesPerDay - assignedToday; rest < quota {
				quota = rest
			}
			if rest := params.TotalMatches - assigned; rest < quota {
				quota = rest
			}

			for _, slot := range groups[startTime] {
				if quota <= 0 {
					break
				}

				price, ok := priceByCourt[slot.CourtID]
				if !ok {
					price, err = s.pricing.Price(ctx, slot.CourtID)
					if err != nil {
						return nil, fmt.Errorf("%w: SelectSlots - price court %d: %v", ErrInternal, slot.CourtID, err)
					}
					priceByCourt[slot.CourtID] = price
				}

				selected = append(selected, &SelectedSlot{
					SlotID:     slot.SlotID,
					CourtID:    slot.CourtID,
					ScheduleID: slot.ScheduleID,
					CourtName:  slot.CourtName,
					StartTime:  slot.StartTime,
					Date:       date,
					Price:      price,
				})
				quota--
				assignedToday++
				assigned++
			}

			if assignedToday >= params.MatchesPerDay || assigned >= params.TotalMatches {
				break
			}
		}
	}

	s.logger.Info("SelectSlots: assigned %d/%d matches in window %s..%s",
		assigned, params.TotalMatches,
		dateStart.Format(domain.DateFormat), dateEnd.Format(domain.DateFormat))

	return selected, nil
}

// ValidateAvailability прогоняет подбор слотов без записи брони и отчитывается
// об осуществимости турнира с точной суммой по выбранным слотам.
// Ленивая материализация строк слотов остается наблюдаемым побочным эффектом.
func (s *Service) ValidateAvailability(ctx context.Context, params SelectParams) (*Availability, error) {
	selected, err := s.SelectSlots(ctx, params)
	if err != nil {
		return nil, err
	}

	amount := decimal.Zero
	for _, slot := range selected {
		amount = amount.Add(slot.Price)
	}

	return &Availability{
		Feasible:        len(selected) >= params.TotalMatches,
		Available:       len(selected),
		Needed:          params.TotalMatches,
		EstimatedAmount: amount,
	}, nil
}

// availableSlotsForDate лениво создает слоты даты и возвращает доступные
func (s *Service) availableSlotsForDate(ctx context.Context, date time.Time, courtTypeIDs []int64) ([]*slotRow, error) {
	courts, err := s.catalog.ListCourts(ctx, courtTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: availableSlotsForDate - list courts: %v", ErrInternal, err)
	}
	schedules, err := s.catalog.ListSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: availableSlotsForDate - list schedules: %v", ErrInternal, err)
	}

	courtIDs := make([]int64, len(courts))
	for i, c := range courts {
		courtIDs[i] = c.ID
	}
	scheduleIDs := make([]int64, len(schedules))
	for i, sch := range schedules {
		scheduleIDs[i] = sch.ID
	}

	if err := s.slotRepo.EnsureForDate(ctx, date, courtIDs, scheduleIDs); err != nil {
		return nil, fmt.Errorf("%w: availableSlotsForDate - ensure slots: %v", ErrInternal, err)
	}

	available, err := s.slotRepo.GetAvailableByDate(ctx, date, courtTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: availableSlotsForDate - get available: %v", ErrInternal, err)
	}

	rows := make([]*slotRow, len(available))
	for i, a := range available {
		rows[i] = &slotRow{
			SlotID:     a.SlotID,
			CourtID:    a.CourtID,
			ScheduleID: a.ScheduleID,
			CourtName:  a.CourtName,
			StartTime:  a.StartTime,
		}
	}
	return rows, nil
}

type slotRow struct {
	SlotID     int64
	CourtID    int64
	ScheduleID int64
	CourtName  string
	StartTime  string
}

// groupByStartTime группирует слоты по времени начала и возвращает
// отсортированный по возрастанию список времен
func groupByStartTime(slots []*slotRow) (map[string][]*slotRow, []string) {
	groups := make(map[string][]*slotRow)
	times := make([]string, 0)

	for _, slot := range slots {
		if _, ok := groups[slot.StartTime]; !ok {
			times = append(times, slot.StartTime)
		}
		groups[slot.StartTime] = append(groups[slot.StartTime], slot)
	}

	sort.Strings(times)
	return groups, times
}
