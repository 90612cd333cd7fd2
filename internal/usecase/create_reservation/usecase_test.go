package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	catalogRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/catalog"
	slotRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/slot"
	"github.com/m04kA/SFC-ReservaService/internal/integrations/customerservice"
)

// --- фейки ---

type fakeReservationRepo struct {
	nextID    int64
	created   []*domain.Reservation
	lineItems []*domain.LineItem
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	cp := *res
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.created = append(f.created, &cp)
	return &cp, nil
}

func (f *fakeReservationRepo) CreateLineItem(_ context.Context, item *domain.LineItem) (*domain.LineItem, error) {
	cp := *item
	cp.ID = int64(len(f.lineItems) + 1)
	f.lineItems = append(f.lineItems, &cp)
	return &cp, nil
}

type slotKey struct {
	courtID    int64
	scheduleID int64
	date       string
}

func keyFor(courtID, scheduleID int64, date time.Time) slotKey {
	return slotKey{courtID, scheduleID, date.Format(domain.DateFormat)}
}

type claimRecord struct {
	courtID    int64
	scheduleID int64
	date       time.Time
}

type fakeSlotRepo struct {
	nextSlotID int64
	// taken помечает слоты, уже занятые на момент валидации
	taken map[slotKey]bool
	// takenAtWrite имитирует гонку: слот свободен при валидации,
	// но занят к моменту выкупа
	takenAtWrite map[slotKey]bool
	claimed      []claimRecord
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{
		taken:        make(map[slotKey]bool),
		takenAtWrite: make(map[slotKey]bool),
	}
}

func (f *fakeSlotRepo) GetByCourtScheduleDate(_ context.Context, courtID, scheduleID int64, date time.Time) (*domain.Slot, error) {
	if f.taken[keyFor(courtID, scheduleID, date)] {
		return &domain.Slot{ID: 99, CourtID: courtID, ScheduleID: scheduleID, Date: date, Status: domain.SlotUnavailable}, nil
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) EnsureForDate(_ context.Context, _ time.Time, _, _ []int64) error {
	return nil
}

func (f *fakeSlotRepo) Claim(_ context.Context, courtID, scheduleID int64, date time.Time) (int64, error) {
	key := keyFor(courtID, scheduleID, date)
	if f.taken[key] || f.takenAtWrite[key] {
		return 0, slotRepo.ErrSlotNotAvailable
	}
	f.nextSlotID++
	f.claimed = append(f.claimed, claimRecord{courtID, scheduleID, date})
	return f.nextSlotID, nil
}

type fakePaymentRepo struct {
	created []*domain.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	cp := *p
	cp.ID = int64(len(f.created) + 1)
	f.created = append(f.created, &cp)
	return &cp, nil
}

type fakeCatalogRepo struct {
	courts    map[int64]*domain.Court
	schedules map[int64]*domain.Schedule
	methods   map[int64]*domain.PaymentMethod
}

func (f *fakeCatalogRepo) GetCourt(_ context.Context, id int64) (*domain.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, catalogRepo.ErrCourtNotFound
	}
	return c, nil
}

func (f *fakeCatalogRepo) GetSchedule(_ context.Context, id int64) (*domain.Schedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return nil, catalogRepo.ErrScheduleNotFound
	}
	return s, nil
}

func (f *fakeCatalogRepo) GetPaymentMethod(_ context.Context, id int64) (*domain.PaymentMethod, error) {
	m, ok := f.methods[id]
	if !ok {
		return nil, catalogRepo.ErrPaymentMethodNotFound
	}
	return m, nil
}

type fakePricing struct {
	prices map[int64]decimal.Decimal
}

func (f *fakePricing) Price(_ context.Context, courtID int64) (decimal.Decimal, error) {
	return f.prices[courtID], nil
}

type fakeCustomerClient struct {
	notFound bool
}

func (f *fakeCustomerClient) GetCustomerWithGracefulDegradation(_ context.Context, _ int64) (*customerservice.Customer, error) {
	if f.notFound {
		return nil, customerservice.ErrCustomerNotFound
	}
	return &customerservice.Customer{ID: 10, Name: "Ana Gomez"}, nil
}

type fakeTxManager struct {
	calls  int
	failed bool
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		f.failed = true
		return err
	}
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- окружение ---

type testEnv struct {
	uc       *UseCase
	resRepo  *fakeReservationRepo
	slotRepo *fakeSlotRepo
	payRepo  *fakePaymentRepo
	catalog  *fakeCatalogRepo
	tx       *fakeTxManager
	customer *fakeCustomerClient
}

func newTestEnv() *testEnv {
	resRepo := &fakeReservationRepo{}
	slots := newFakeSlotRepo()
	payRepo := &fakePaymentRepo{}
	catalog := &fakeCatalogRepo{
		courts: map[int64]*domain.Court{
			1: {ID: 1, CourtTypeID: 1, Name: "Cancha 1", Active: true},
			2: {ID: 2, CourtTypeID: 1, Name: "Cancha 2", Active: true},
			3: {ID: 3, CourtTypeID: 2, Name: "Cancha 3", Active: false},
		},
		schedules: map[int64]*domain.Schedule{
			1: {ID: 1, StartTime: "08:00", EndTime: "09:00"},
			2: {ID: 2, StartTime: "09:00", EndTime: "10:00"},
		},
		methods: map[int64]*domain.PaymentMethod{
			1: {ID: 1, Description: "Pago en efectivo"},
			2: {ID: 2, Description: "Tarjeta de credito"},
		},
	}
	pricing := &fakePricing{prices: map[int64]decimal.Decimal{
		1: decimal.NewFromInt(73000),
		2: decimal.NewFromInt(73000),
	}}
	tx := &fakeTxManager{}
	customer := &fakeCustomerClient{}

	uc := NewUseCase(resRepo, slots, payRepo, catalog, pricing, customer, tx, noopLogger{})
	uc.timeProvider = &fixedTime{now: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)}

	return &testEnv{uc: uc, resRepo: resRepo, slotRepo: slots, payRepo: payRepo, catalog: catalog, tx: tx, customer: customer}
}

var bookingDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		CustomerID:      10,
		PaymentMethodID: 2,
		Items: []ItemRequest{
			{CourtID: 1, ScheduleID: 1, Date: bookingDate},
			{CourtID: 1, ScheduleID: 2, Date: bookingDate},
		},
	}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPaid), resp.Status)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(146000)))
	assert.True(t, resp.ReservationDate.Equal(bookingDate))
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].Price.Equal(decimal.NewFromInt(73000)))

	// Один платеж на всю резервацию
	require.Len(t, env.payRepo.created, 1)
	assert.True(t, env.payRepo.created[0].Amount.Equal(decimal.NewFromInt(146000)))
	assert.Equal(t, int64(1), env.payRepo.created[0].ReservationID)

	// Цены позиций зафиксированы в строках
	require.Len(t, env.resRepo.lineItems, 2)
	for _, item := range env.resRepo.lineItems {
		assert.True(t, item.Price.Equal(decimal.NewFromInt(73000)))
	}
}

func TestExecute_ItemsOnDifferentDates(t *testing.T) {
	env := newTestEnv()

	// Один и тот же корт и горизонт на два разных дня в одной резервации
	day1 := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
	req := validRequest()
	req.Items = []ItemRequest{
		{CourtID: 1, ScheduleID: 1, Date: day2},
		{CourtID: 1, ScheduleID: 1, Date: day1},
	}

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].Date.Equal(day2))
	assert.True(t, resp.Items[1].Date.Equal(day1))

	// Датой резервации становится самая ранняя дата позиции
	assert.True(t, resp.ReservationDate.Equal(day1))

	// Каждый слот выкуплен на свою дату
	require.Len(t, env.slotRepo.claimed, 2)
	dates := map[string]bool{}
	for _, c := range env.slotRepo.claimed {
		assert.Equal(t, int64(1), c.courtID)
		assert.Equal(t, int64(1), c.scheduleID)
		dates[c.date.Format(domain.DateFormat)] = true
	}
	assert.True(t, dates["2025-10-15"])
	assert.True(t, dates["2025-10-16"])
}

func TestExecute_CashMethodCreatesPending(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.PaymentMethodID = 1 // "Pago en efectivo"

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_SlotTakenAtValidation(t *testing.T) {
	env := newTestEnv()
	env.slotRepo.taken[keyFor(1, 2, bookingDate)] = true

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	// Отсев до транзакции
	assert.Equal(t, 0, env.tx.calls)
	assert.Empty(t, env.resRepo.created)
}

func TestExecute_SlotTakenConcurrently(t *testing.T) {
	env := newTestEnv()
	// Слот свободен на этапе валидации, но занят к моменту выкупа
	env.slotRepo.takenAtWrite[keyFor(1, 2, bookingDate)] = true

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	// Транзакция была начата и завершилась ошибкой: реальный менеджер
	// откатит резервацию, первый выкупленный слот и позиции
	assert.Equal(t, 1, env.tx.calls)
	assert.True(t, env.tx.failed)
	assert.Empty(t, env.payRepo.created)
}

func TestExecute_PastItemDate(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Items[1].Date = time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, 0, env.tx.calls)
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	env := newTestEnv()

	today := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	req := validRequest()
	req.Items[0].Date = today
	req.Items[1].Date = today

	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_TodayInOtherLocationIsAllowed(t *testing.T) {
	env := newTestEnv()

	// Серверные часы не в UTC: календарное "сегодня" все равно проходит
	loc := time.FixedZone("UTC-5", -5*60*60)
	env.uc.timeProvider = &fixedTime{now: time.Date(2025, 10, 1, 20, 0, 0, 0, loc)}

	req := validRequest()
	req.Items[0].Date = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	req.Items[1].Date = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_CustomerNotFound(t *testing.T) {
	env := newTestEnv()
	env.customer.notFound = true

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_InactiveCourtRejected(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Items = []ItemRequest{{CourtID: 3, ScheduleID: 1, Date: bookingDate}}

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_UnknownScheduleRejected(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Items = []ItemRequest{{CourtID: 1, ScheduleID: 77, Date: bookingDate}}

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestExecute_UnknownPaymentMethod(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.PaymentMethodID = 99

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrPaymentMethodNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"no items", func(req *Request) { req.Items = nil }},
		{"zero customer", func(req *Request) { req.CustomerID = 0 }},
		{"zero method", func(req *Request) { req.PaymentMethodID = 0 }},
		{"zero item date", func(req *Request) { req.Items[0].Date = time.Time{} }},
		{"duplicate item", func(req *Request) {
			req.Items = []ItemRequest{
				{CourtID: 1, ScheduleID: 1, Date: bookingDate},
				{CourtID: 1, ScheduleID: 1, Date: bookingDate},
			}
		}},
		{"zero court", func(req *Request) { req.Items = []ItemRequest{{CourtID: 0, ScheduleID: 1, Date: bookingDate}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
