package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	reservationRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/slot"
	"github.com/m04kA/SFC-ReservaService/internal/integrations/customerservice"
	"github.com/m04kA/SFC-ReservaService/internal/service/reservations/models"
	"github.com/m04kA/SFC-ReservaService/pkg/ptr"
)

// --- фейки ---

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
	items        map[int64][]*domain.LineItem
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		reservations: make(map[int64]*domain.Reservation),
		items:        make(map[int64][]*domain.LineItem),
	}
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReservationRepo) GetBySlotID(_ context.Context, slotID int64) (*domain.Reservation, error) {
	var found *domain.Reservation
	for id, items := range f.items {
		for _, item := range items {
			if item.SlotID != slotID {
				continue
			}
			r, ok := f.reservations[id]
			if !ok || r.Status == domain.StatusCancelled {
				continue
			}
			if found == nil || r.ID > found.ID {
				found = r
			}
		}
	}
	if found == nil {
		return nil, reservationRepo.ErrReservationNotFound
	}
	cp := *found
	return &cp, nil
}

func (f *fakeReservationRepo) ListByStatuses(_ context.Context, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		for _, s := range statuses {
			if r.Status == s {
				cp := *r
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, id int64, fields reservationRepo.UpdateFields) error {
	r, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if fields.TotalAmount != nil {
		r.TotalAmount = *fields.TotalAmount
	}
	if fields.ReservationDate != nil {
		r.ReservationDate = *fields.ReservationDate
	}
	if fields.Status != nil {
		r.Status = *fields.Status
	}
	return nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(f.reservations, id)
	return nil
}

func (f *fakeReservationRepo) GetLineItemsByReservation(_ context.Context, reservationID int64) ([]*domain.LineItem, error) {
	return f.items[reservationID], nil
}

func (f *fakeReservationRepo) DeleteLineItemsByReservation(_ context.Context, reservationID int64) error {
	delete(f.items, reservationID)
	return nil
}

type fakeSlotRepo struct {
	slots    map[int64]*domain.Slot
	released []int64
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[int64]*domain.Slot)}
}

func (f *fakeSlotRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, id := range ids {
		if s, ok := f.slots[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) GetByCourtScheduleDate(_ context.Context, courtID, scheduleID int64, date time.Time) (*domain.Slot, error) {
	for _, s := range f.slots {
		if s.CourtID == courtID && s.ScheduleID == scheduleID && domain.SameDay(s.Date, date) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) Release(_ context.Context, ids []int64) error {
	for _, id := range ids {
		if s, ok := f.slots[id]; ok {
			s.Status = domain.SlotAvailable
		}
		f.released = append(f.released, id)
	}
	return nil
}

func (f *fakeSlotRepo) UpdateDate(_ context.Context, id int64, newDate time.Time) error {
	if s, ok := f.slots[id]; ok {
		s.Date = newDate
	}
	return nil
}

type fakePaymentRepo struct {
	deleted []int64
}

func (f *fakePaymentRepo) DeleteByReservation(_ context.Context, reservationID int64) error {
	f.deleted = append(f.deleted, reservationID)
	return nil
}

type fakeCustomerClient struct {
	customer *customerservice.Customer
}

func (f *fakeCustomerClient) GetCustomerWithGracefulDegradation(_ context.Context, _ int64) (*customerservice.Customer, error) {
	return f.customer, nil
}

type fakeTxManager struct {
	doCalls       int
	readOnlyCalls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.doCalls++
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.readOnlyCalls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- хелперы ---

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type testEnv struct {
	svc      *Service
	resRepo  *fakeReservationRepo
	slotRepo *fakeSlotRepo
	payRepo  *fakePaymentRepo
	tx       *fakeTxManager
}

func newTestEnv(now time.Time) *testEnv {
	resRepo := newFakeReservationRepo()
	slotRepo := newFakeSlotRepo()
	payRepo := &fakePaymentRepo{}
	tx := &fakeTxManager{}
	svc := NewService(resRepo, slotRepo, payRepo, &fakeCustomerClient{}, tx, noopLogger{})
	svc.timeProvider = &fixedTime{now: now}
	return &testEnv{svc: svc, resRepo: resRepo, slotRepo: slotRepo, payRepo: payRepo, tx: tx}
}

func (e *testEnv) addReservation(id int64, status domain.ReservationStatus, resDate time.Time, slotDates ...time.Time) {
	e.resRepo.reservations[id] = &domain.Reservation{
		ID:              id,
		CustomerID:      10,
		TotalAmount:     decimal.NewFromInt(50000),
		ReservationDate: resDate,
		Status:          status,
	}
	for i, d := range slotDates {
		slotID := id*100 + int64(i)
		e.slotRepo.slots[slotID] = &domain.Slot{
			ID:         slotID,
			CourtID:    id,
			ScheduleID: int64(i + 1),
			Status:     domain.SlotUnavailable,
			Date:       d,
		}
		e.resRepo.items[id] = append(e.resRepo.items[id], &domain.LineItem{
			ID:            slotID,
			ReservationID: id,
			SlotID:        slotID,
			Price:         decimal.NewFromInt(25000),
		})
	}
}

// --- тесты ---

func TestCancel_PendingReleasesSlots(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15), date(2025, 10, 15))

	err := env.svc.Cancel(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, env.resRepo.reservations[1].Status)
	assert.ElementsMatch(t, []int64{100, 101}, env.slotRepo.released)
	for _, s := range env.slotRepo.slots {
		assert.Equal(t, domain.SlotAvailable, s.Status)
	}
}

func TestCancel_PaidRejected(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPaid, date(2025, 10, 15), date(2025, 10, 15))

	err := env.svc.Cancel(context.Background(), 1)
	require.ErrorIs(t, err, ErrInvalidState)

	// Статус и слоты не тронуты
	assert.Equal(t, domain.StatusPaid, env.resRepo.reservations[1].Status)
	assert.Empty(t, env.slotRepo.released)
	assert.Equal(t, domain.SlotUnavailable, env.slotRepo.slots[100].Status)
}

func TestCancel_NotFound(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))

	err := env.svc.Cancel(context.Background(), 42)
	require.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_ReleasesOnlyOwnSlots(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15), date(2025, 10, 15))
	env.addReservation(2, domain.StatusPending, date(2025, 10, 16), date(2025, 10, 16))

	err := env.svc.Cancel(context.Background(), 1)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int64{100, 101}, env.slotRepo.released)
	assert.Equal(t, domain.SlotUnavailable, env.slotRepo.slots[200].Status)
}

func TestUpdate_AmountOnlyWhilePending(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15))

	newAmount := decimal.NewFromInt(60000)
	resp, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{TotalAmount: &newAmount})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(newAmount))
}

func TestUpdate_AmountRejectedAfterPayment(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPaid, date(2025, 10, 15), date(2025, 10, 15))

	newAmount := decimal.NewFromInt(60000)
	_, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{TotalAmount: &newAmount})
	require.ErrorIs(t, err, ErrInvalidState)

	assert.True(t, env.resRepo.reservations[1].TotalAmount.Equal(decimal.NewFromInt(50000)))
}

func TestUpdate_StatusCancelReleasesSlots(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPaid, date(2025, 10, 15), date(2025, 10, 15))

	resp, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{
		Status: ptr.Ptr(domain.StatusCancelled),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.ElementsMatch(t, []int64{100}, env.slotRepo.released)
}

func TestUpdate_StatusTransitionRejected(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15))

	// pendiente -> finalizada недопустимо без оплаты
	_, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{
		Status: ptr.Ptr(domain.StatusFinalized),
	})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdate_DateShiftMovesAllSlots(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15), date(2025, 10, 15))

	newDate := date(2025, 10, 18)
	resp, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{ReservationDate: &newDate})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-18", resp.ReservationDate)
	assert.True(t, env.slotRepo.slots[100].Date.Equal(date(2025, 10, 18)))
	assert.True(t, env.slotRepo.slots[101].Date.Equal(date(2025, 10, 18)))
}

func TestUpdate_EmptyRequest(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15))

	_, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFinalizeExpired_Sweep(t *testing.T) {
	env := newTestEnv(date(2025, 10, 20))
	// Оплаченная с прошедшими слотами: должна стать finalizada
	env.addReservation(1, domain.StatusPaid, date(2025, 10, 10), date(2025, 10, 10))
	// Неоплаченная с прошедшими слотами: должна стать cancelada, слот освобожден
	env.addReservation(2, domain.StatusPending, date(2025, 10, 12), date(2025, 10, 12))
	// Оплаченная с будущим слотом: не трогается
	env.addReservation(3, domain.StatusPaid, date(2025, 10, 25), date(2025, 10, 25))
	// Частично прошедшая: второй слот в будущем, не трогается
	env.addReservation(4, domain.StatusPaid, date(2025, 10, 15), date(2025, 10, 15), date(2025, 10, 25))

	count, err := env.svc.FinalizeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, domain.StatusFinalized, env.resRepo.reservations[1].Status)
	assert.Equal(t, domain.StatusCancelled, env.resRepo.reservations[2].Status)
	assert.Equal(t, domain.StatusPaid, env.resRepo.reservations[3].Status)
	assert.Equal(t, domain.StatusPaid, env.resRepo.reservations[4].Status)

	// Освобожден только слот брошенной pendiente-резервации
	assert.ElementsMatch(t, []int64{200}, env.slotRepo.released)
}

func TestFinalizeExpired_SkipsReservationsWithoutItems(t *testing.T) {
	env := newTestEnv(date(2025, 10, 20))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 10))

	count, err := env.svc.FinalizeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, domain.StatusPending, env.resRepo.reservations[1].Status)
}

func TestFinalizeExpired_BoundaryTodayNotExpired(t *testing.T) {
	env := newTestEnv(date(2025, 10, 20))
	// Слот на сегодня еще не прошел
	env.addReservation(1, domain.StatusPaid, date(2025, 10, 20), date(2025, 10, 20))

	count, err := env.svc.FinalizeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, domain.StatusPaid, env.resRepo.reservations[1].Status)
}

func TestDelete_PendingCascades(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15))

	err := env.svc.Delete(context.Background(), 1)
	require.NoError(t, err)

	assert.NotContains(t, env.resRepo.reservations, int64(1))
	assert.NotContains(t, env.resRepo.items, int64(1))
	assert.ElementsMatch(t, []int64{1}, env.payRepo.deleted)
	// Слоты намеренно остаются как есть
	assert.Equal(t, domain.SlotUnavailable, env.slotRepo.slots[100].Status)
}

func TestDelete_PaidRejected(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPaid, date(2025, 10, 15), date(2025, 10, 15))

	err := env.svc.Delete(context.Background(), 1)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, env.resRepo.reservations, int64(1))
}

func TestGetByID_WithCustomerSummary(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15))

	svc := NewService(env.resRepo, env.slotRepo, env.payRepo, &fakeCustomerClient{
		customer: &customerservice.Customer{ID: 10, Name: "Ana Gomez", Email: "ana@example.com", Phone: "+57 300 1234567"},
	}, &fakeTxManager{}, noopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, resp.Customer)
	assert.Equal(t, "Ana Gomez", resp.Customer.Name)
	assert.Len(t, resp.Items, 1)
}

func TestGetByID_CustomerServiceDegraded(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15))

	resp, err := env.svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, resp.Customer)
}

func TestGetByID_ReadsInReadOnlyTransaction(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15))

	_, err := env.svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, env.tx.readOnlyCalls)
	assert.Equal(t, 0, env.tx.doCalls)
}

func TestGetBySlot_Found(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15))

	resp, err := env.svc.GetBySlot(context.Background(), 1, 1, date(2025, 10, 15))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Len(t, resp.Items, 1)
}

func TestGetBySlot_NormalizesDate(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15))

	// Время суток и зона запроса не влияют на поиск по дате
	lima := time.FixedZone("UTC-5", -5*60*60)
	resp, err := env.svc.GetBySlot(context.Background(), 1, 1, time.Date(2025, 10, 15, 18, 30, 0, 0, lima))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestGetBySlot_UnknownSlot(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusPending, date(2025, 10, 15), date(2025, 10, 15))

	_, err := env.svc.GetBySlot(context.Background(), 99, 1, date(2025, 10, 15))
	require.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetBySlot_CancelledReservationExcluded(t *testing.T) {
	env := newTestEnv(date(2025, 10, 1))
	env.addReservation(1, domain.StatusCancelled, date(2025, 10, 15), date(2025, 10, 15))

	_, err := env.svc.GetBySlot(context.Background(), 1, 1, date(2025, 10, 15))
	require.ErrorIs(t, err, ErrReservationNotFound)
}
