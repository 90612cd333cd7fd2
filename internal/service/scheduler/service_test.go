package scheduler

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	slotRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/slot"
)

type memSlot struct {
	id         int64
	courtID    int64
	scheduleID int64
	date       string
	available  bool
}

// fakeSlotRepo in-memory реализация репозитория слотов с ленивой материализацией
type fakeSlotRepo struct {
	nextID    int64
	slots     map[string]*memSlot // key: court/schedule/date
	schedules map[int64]string    // schedule id -> start time
	courts    map[int64]*domain.Court
}

func slotKey(courtID, scheduleID int64, date string) string {
	return fmt.Sprintf("%d/%d/%s", courtID, scheduleID, date)
}

func (f *fakeSlotRepo) EnsureForDate(_ context.Context, date time.Time, courtIDs, scheduleIDs []int64) error {
	d := date.Format(domain.DateFormat)
	for _, c := range courtIDs {
		for _, s := range scheduleIDs {
			key := slotKey(c, s, d)
			if _, ok := f.slots[key]; !ok {
				f.nextID++
				f.slots[key] = &memSlot{id: f.nextID, courtID: c, scheduleID: s, date: d, available: true}
			}
		}
	}
	return nil
}

func (f *fakeSlotRepo) GetAvailableByDate(_ context.Context, date time.Time, courtTypeIDs []int64) ([]*slotRepo.AvailableSlot, error) {
	d := date.Format(domain.DateFormat)
	typeFilter := make(map[int64]bool)
	for _, id := range courtTypeIDs {
		typeFilter[id] = true
	}

	result := make([]*slotRepo.AvailableSlot, 0)
	for _, s := range f.slots {
		if s.date != d || !s.available {
			continue
		}
		court := f.courts[s.courtID]
		if len(typeFilter) > 0 && !typeFilter[court.CourtTypeID] {
			continue
		}
		result = append(result, &slotRepo.AvailableSlot{
			SlotID:     s.id,
			CourtID:    s.courtID,
			ScheduleID: s.scheduleID,
			CourtName:  court.Name,
			StartTime:  f.schedules[s.scheduleID],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].CourtID < result[j].CourtID
	})
	return result, nil
}

type fakeCatalog struct {
	courts    []*domain.Court
	schedules []*domain.Schedule
}

func (f *fakeCatalog) ListCourts(_ context.Context, courtTypeIDs []int64) ([]*domain.Court, error) {
	if len(courtTypeIDs) == 0 {
		return f.courts, nil
	}
	filter := make(map[int64]bool)
	for _, id := range courtTypeIDs {
		filter[id] = true
	}
	result := make([]*domain.Court, 0)
	for _, c := range f.courts {
		if filter[c.CourtTypeID] {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeCatalog) ListSchedules(_ context.Context) ([]*domain.Schedule, error) {
	return f.schedules, nil
}

type fixedPricing struct {
	price decimal.Decimal
}

func (p fixedPricing) Price(_ context.Context, _ int64) (decimal.Decimal, error) {
	return p.price, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newFixture(courtCount, scheduleCount int) (*fakeSlotRepo, *fakeCatalog) {
	catalog := &fakeCatalog{}
	courts := make(map[int64]*domain.Court)
	schedules := make(map[int64]string)

	for i := 1; i <= courtCount; i++ {
		c := &domain.Court{ID: int64(i), CourtTypeID: 1, Name: fmt.Sprintf("Cancha %d", i), Active: true}
		catalog.courts = append(catalog.courts, c)
		courts[c.ID] = c
	}
	for i := 1; i <= scheduleCount; i++ {
		start := fmt.Sprintf("%02d:00", 8+i)
		catalog.schedules = append(catalog.schedules, &domain.Schedule{ID: int64(i), StartTime: start})
		schedules[int64(i)] = start
	}

	repo := &fakeSlotRepo{
		slots:     make(map[string]*memSlot),
		schedules: schedules,
		courts:    courts,
	}
	return repo, catalog
}

func TestMaxMatchesPerDay(t *testing.T) {
	repo, catalog := newFixture(3, 8)
	svc := NewService(repo, catalog, fixedPricing{decimal.NewFromInt(1000)}, nopLogger{})

	// 3 корта x 8 горизонтов = 24; при 6 командах лимит (6/2)*8 = 24
	got, err := svc.MaxMatchesPerDay(context.Background(), 6, nil)
	require.NoError(t, err)
	assert.Equal(t, 24, got)

	// без числа команд ограничение только по слотам
	got, err = svc.MaxMatchesPerDay(context.Background(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 24, got)

	// 2 команды: (2/2)*8 = 8 < 24
	got, err = svc.MaxMatchesPerDay(context.Background(), 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, got)
}

func TestTotalMatchesAndDaysNeeded(t *testing.T) {
	repo, catalog := newFixture(3, 8)
	svc := NewService(repo, catalog, fixedPricing{decimal.NewFromInt(1000)}, nopLogger{})

	assert.Equal(t, 15, svc.TotalMatches(6))
	assert.Equal(t, 3, svc.DaysNeeded(15, 6))
	assert.Equal(t, 1, svc.DaysNeeded(6, 6))
	assert.Equal(t, 0, svc.DaysNeeded(5, 0))
}

// Правило одновременности: день 1 закрывает оба своих матча в самом раннем
// горизонте на разных кортах, третий матч уезжает на день 2
func TestSelectSlotsPrioritizesSimultaneity(t *testing.T) {
	repo, catalog := newFixture(2, 2)
	svc := NewService(repo, catalog, fixedPricing{decimal.NewFromInt(5000)}, nopLogger{})

	day1 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)

	selected, err := svc.SelectSlots(context.Background(), SelectParams{
		DateStart:     day1,
		DateEnd:       day2,
		MatchesPerDay: 2,
		TotalMatches:  3,
		TeamCount:     4, // maxSimultaneous = 2
	})
	require.NoError(t, err)
	require.Len(t, selected, 3)

	// первые два матча: день 1, один и тот же горизонт, разные корты
	assert.True(t, domain.SameDay(selected[0].Date, day1))
	assert.True(t, domain.SameDay(selected[1].Date, day1))
	assert.Equal(t, selected[0].StartTime, selected[1].StartTime)
	assert.NotEqual(t, selected[0].CourtID, selected[1].CourtID)

	// третий матч: день 2
	assert.True(t, domain.SameDay(selected[2].Date, day2))
}

// Лимит одновременности не дает занять весь ряд кортов малым турниром
func TestSelectSlotsRespectsSimultaneousCap(t *testing.T) {
	repo, catalog := newFixture(4, 2)
	svc := NewService(repo, catalog, fixedPricing{decimal.NewFromInt(5000)}, nopLogger{})

	day1 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	selected, err := svc.SelectSlots(context.Background(), SelectParams{
		DateStart:     day1,
		DateEnd:       day1,
		MatchesPerDay: 4,
		TotalMatches:  4,
		TeamCount:     2, // maxSimultaneous = 1
	})
	require.NoError(t, err)
	require.Len(t, selected, 2) // по одному матчу в каждом из двух горизонтов

	assert.NotEqual(t, selected[0].StartTime, selected[1].StartTime)
}

func TestSelectSlotsShortfall(t *testing.T) {
	repo, catalog := newFixture(1, 1)
	svc := NewService(repo, catalog, fixedPricing{decimal.NewFromInt(5000)}, nopLogger{})

	day1 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)

	selected, err := svc.SelectSlots(context.Background(), SelectParams{
		DateStart:     day1,
		DateEnd:       day2,
		MatchesPerDay: 1,
		TotalMatches:  5,
		TeamCount:     4,
	})
	require.NoError(t, err)
	// окно на 2 дня по одному слоту в день - недобор детектирует вызывающий код
	assert.Len(t, selected, 2)
}

func TestSelectSlotsSkipsFullyBookedDay(t *testing.T) {
	repo, catalog := newFixture(1, 1)
	svc := NewService(repo, catalog, fixedPricing{decimal.NewFromInt(5000)}, nopLogger{})

	day1 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)

	// день 1 уже занят
	require.NoError(t, repo.EnsureForDate(context.Background(), day1, []int64{1}, []int64{1}))
	repo.slots[slotKey(1, 1, day1.Format(domain.DateFormat))].available = false

	selected, err := svc.SelectSlots(context.Background(), SelectParams{
		DateStart:     day1,
		DateEnd:       day2,
		MatchesPerDay: 1,
		TotalMatches:  1,
		TeamCount:     2,
	})
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.True(t, domain.SameDay(selected[0].Date, day2))
}

func TestValidateAvailability(t *testing.T) {
	repo, catalog := newFixture(2, 2)
	svc := NewService(repo, catalog, fixedPricing{decimal.NewFromInt(7300)}, nopLogger{})

	day1 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	report, err := svc.ValidateAvailability(context.Background(), SelectParams{
		DateStart:     day1,
		DateEnd:       day1,
		MatchesPerDay: 4,
		TotalMatches:  3,
		TeamCount:     4,
	})
	require.NoError(t, err)
	assert.True(t, report.Feasible)
	assert.Equal(t, 3, report.Available)
	assert.Equal(t, 3, report.Needed)
	assert.True(t, report.EstimatedAmount.Equal(decimal.NewFromInt(21900)))

	// слишком большой турнир в то же окно
	report, err = svc.ValidateAvailability(context.Background(), SelectParams{
		DateStart:     day1,
		DateEnd:       day1,
		MatchesPerDay: 4,
		TotalMatches:  10,
		TeamCount:     8,
	})
	require.NoError(t, err)
	assert.False(t, report.Feasible)
	assert.Equal(t, 4, report.Available)
	assert.Equal(t, 10, report.Needed)
}

func TestSelectSlotsInvalidInput(t *testing.T) {
	repo, catalog := newFixture(1, 1)
	svc := NewService(repo, catalog, fixedPricing{decimal.Zero}, nopLogger{})

	day1 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.SelectSlots(context.Background(), SelectParams{
		DateStart: day1, DateEnd: day1, MatchesPerDay: 1, TotalMatches: 1, TeamCount: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SelectSlots(context.Background(), SelectParams{
		DateStart: day1.AddDate(0, 0, 3), DateEnd: day1, MatchesPerDay: 1, TotalMatches: 1, TeamCount: 2,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
