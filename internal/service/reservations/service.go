package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	reservationRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/slot"
	"github.com/m04kA/SFC-ReservaService/internal/service/reservations/models"
	"github.com/m04kA/SFC-ReservaService/pkg/ptr"
)

// Service управляет жизненным циклом существующих резерваций:
// отмена, частичное обновление, финализация просроченных, каскадное удаление.
// Каждая операция с несколькими строками выполняется в одной транзакции.
type Service struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	paymentRepo     PaymentRepository
	customerClient  CustomerClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса жизненного цикла резерваций
func NewService(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	paymentRepo PaymentRepository,
	customerClient CustomerClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		paymentRepo:     paymentRepo,
		customerClient:  customerClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает резервацию с позициями и сводкой по клиенту
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	var (
		reservation *domain.Reservation
		items       []*domain.LineItem
	)

	// Обе выборки читаются в одной read-only транзакции
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		reservation, err = s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
		}

		items, err = s.reservationRepo.GetLineItemsByReservation(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: GetByID - get line items: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сводка по клиенту опциональна, недоступность сервиса клиентов
	// не блокирует чтение резервации
	customer, err := s.customerClient.GetCustomerWithGracefulDegradation(ctx, reservation.CustomerID)
	if err != nil {
		s.logger.Warn("GetByID: customer %d lookup failed: %v", reservation.CustomerID, err)
		customer = nil
	}

	return models.FromDomainReservation(reservation, items, customer), nil
}

// GetBySlot получает резервацию, занимающую слот (корт, горизонт, дата).
// Несуществующий или свободный слот означает отсутствие резервации.
func (s *Service) GetBySlot(ctx context.Context, courtID, scheduleID int64, date time.Time) (*models.ReservationResponse, error) {
	var reservationID int64

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByCourtScheduleDate(txCtx, courtID, scheduleID, domain.DateOnly(date))
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: GetBySlot - get slot: %v", ErrInternal, err)
		}

		reservation, err := s.reservationRepo.GetBySlotID(txCtx, slot.ID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: GetBySlot - get reservation: %v", ErrInternal, err)
		}

		reservationID = reservation.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, reservationID)
}

// Cancel отменяет pendiente-резервацию и освобождает все её слоты.
// Для любого другого статуса возвращает ErrInvalidState.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: reservation id=%d", id)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Cancel - get reservation: %v", ErrInternal, err)
		}

		if !reservation.CanBeCancelled() {
			s.logger.Warn("Cancel: reservation id=%d in status %s cannot be cancelled", id, reservation.Status)
			return ErrInvalidState
		}

		newStatus, err := domain.TransitionReservation(reservation.Status, domain.EventCancel)
		if err != nil {
			return ErrInvalidState
		}

		if err := s.reservationRepo.Update(txCtx, id, reservationRepo.UpdateFields{Status: &newStatus}); err != nil {
			return fmt.Errorf("%w: Cancel - update status: %v", ErrInternal, err)
		}

		if err := s.releaseSlots(txCtx, id); err != nil {
			return err
		}

		s.logger.Info("Cancel: reservation id=%d cancelled", id)
		return nil
	})
}

// Update частично обновляет резервацию:
// сумма меняется только в pendiente; смена статуса идет через машину состояний
// с каскадным освобождением слотов при отмене; сдвиг даты переносит дату
// каждого слота позиций на ту же дельту дней.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateReservationRequest) (*models.ReservationResponse, error) {
	if req == nil || req.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	s.logger.Info("Update: reservation id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Update - get reservation: %v", ErrInternal, err)
		}

		fields := reservationRepo.UpdateFields{}

		// Правка суммы допустима только в pendiente
		if req.TotalAmount != nil && !req.TotalAmount.Equal(reservation.TotalAmount) {
			if !reservation.CanEditAmount() {
				s.logger.Warn("Update: amount change rejected for reservation id=%d in status %s", id, reservation.Status)
				return ErrInvalidState
			}
			fields.TotalAmount = req.TotalAmount
		}

		// Смена статуса через машину состояний
		if req.Status != nil && *req.Status != reservation.Status {
			event, err := domain.ReservationEventForStatus(*req.Status)
			if err != nil {
				return ErrInvalidState
			}
			newStatus, err := domain.TransitionReservation(reservation.Status, event)
			if err != nil {
				s.logger.Warn("Update: status change %s -> %s rejected for reservation id=%d",
					reservation.Status, *req.Status, id)
				return ErrInvalidState
			}
			fields.Status = &newStatus
		}

		// Сдвиг даты резервации переносит слоты всех позиций на ту же дельту
		if req.ReservationDate != nil && !domain.SameDay(*req.ReservationDate, reservation.ReservationDate) {
			if reservation.IsTerminal() {
				return ErrInvalidState
			}
			deltaDays := domain.DaysBetween(reservation.ReservationDate, *req.ReservationDate)
			if err := s.shiftSlots(txCtx, id, deltaDays); err != nil {
				return err
			}
			fields.ReservationDate = ptr.Ptr(domain.DateOnly(*req.ReservationDate))
		}

		if fields.TotalAmount == nil && fields.Status == nil && fields.ReservationDate == nil {
			// Изменений по факту нет
			return nil
		}

		if err := s.reservationRepo.Update(txCtx, id, fields); err != nil {
			return fmt.Errorf("%w: Update - update reservation: %v", ErrInternal, err)
		}

		// Отмена каскадно освобождает слоты
		if fields.Status != nil && *fields.Status == domain.StatusCancelled {
			if err := s.releaseSlots(txCtx, id); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// FinalizeExpired обрабатывает все нетерминальные резервации, у которых даты
// всех слотов уже прошли: pagada -> finalizada, pendiente -> cancelada
// с освобождением слотов (неоплаченная бронь считается брошенной).
// Весь проход выполняется одной транзакцией; возвращает число переходов.
func (s *Service) FinalizeExpired(ctx context.Context) (int, error) {
	s.logger.Info("FinalizeExpired: starting sweep")

	today := domain.DateOnly(s.timeProvider.Now())
	count := 0

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		active, err := s.reservationRepo.ListByStatuses(txCtx, []domain.ReservationStatus{
			domain.StatusPending, domain.StatusPaid,
		})
		if err != nil {
			return fmt.Errorf("%w: FinalizeExpired - list reservations: %v", ErrInternal, err)
		}

		for _, reservation := range active {
			items, err := s.reservationRepo.GetLineItemsByReservation(txCtx, reservation.ID)
			if err != nil {
				return fmt.Errorf("%w: FinalizeExpired - get line items: %v", ErrInternal, err)
			}
			if len(items) == 0 {
				continue
			}

			slotIDs := make([]int64, len(items))
			for i, item := range items {
				slotIDs[i] = item.SlotID
			}

			slots, err := s.slotRepo.GetByIDs(txCtx, slotIDs)
			if err != nil {
				return fmt.Errorf("%w: FinalizeExpired - get slots: %v", ErrInternal, err)
			}

			expired := true
			for _, slot := range slots {
				if !domain.DateBefore(slot.Date, today) {
					expired = false
					break
				}
			}
			if !expired {
				continue
			}

			newStatus, err := domain.TransitionReservation(reservation.Status, domain.EventExpire)
			if err != nil {
				// Нетерминальная резервация всегда принимает expire
				return fmt.Errorf("%w: FinalizeExpired - unexpected transition failure: %v", ErrInternal, err)
			}

			if err := s.reservationRepo.Update(txCtx, reservation.ID, reservationRepo.UpdateFields{Status: &newStatus}); err != nil {
				return fmt.Errorf("%w: FinalizeExpired - update status: %v", ErrInternal, err)
			}

			if newStatus == domain.StatusCancelled {
				if err := s.slotRepo.Release(txCtx, slotIDs); err != nil {
					return fmt.Errorf("%w: FinalizeExpired - release slots: %v", ErrInternal, err)
				}
			}

			s.logger.Info("FinalizeExpired: reservation id=%d %s -> %s", reservation.ID, reservation.Status, newStatus)
			count++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("FinalizeExpired: sweep done, %d reservations transitioned", count)
	return count, nil
}

// Delete каскадно удаляет pendiente-резервацию: платеж, позиции, резервацию.
// Слоты намеренно не освобождаются: жесткое удаление pendiente-брони означает,
// что слоты никогда не были легитимно выкуплены.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: reservation id=%d", id)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Delete - get reservation: %v", ErrInternal, err)
		}

		if !reservation.CanBeDeleted() {
			s.logger.Warn("Delete: reservation id=%d in status %s cannot be deleted", id, reservation.Status)
			return ErrInvalidState
		}

		if err := s.paymentRepo.DeleteByReservation(txCtx, id); err != nil {
			return fmt.Errorf("%w: Delete - delete payment: %v", ErrInternal, err)
		}
		if err := s.reservationRepo.DeleteLineItemsByReservation(txCtx, id); err != nil {
			return fmt.Errorf("%w: Delete - delete line items: %v", ErrInternal, err)
		}
		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("%w: Delete - delete reservation: %v", ErrInternal, err)
		}

		s.logger.Info("Delete: reservation id=%d deleted", id)
		return nil
	})
}

// releaseSlots освобождает слоты всех позиций резервации
func (s *Service) releaseSlots(ctx context.Context, reservationID int64) error {
	items, err := s.reservationRepo.GetLineItemsByReservation(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("%w: releaseSlots - get line items: %v", ErrInternal, err)
	}

	slotIDs := make([]int64, len(items))
	for i, item := range items {
		slotIDs[i] = item.SlotID
	}

	if err := s.slotRepo.Release(ctx, slotIDs); err != nil {
		return fmt.Errorf("%w: releaseSlots - release: %v", ErrInternal, err)
	}

	return nil
}

// shiftSlots переносит слоты всех позиций резервации на deltaDays дней
func (s *Service) shiftSlots(ctx context.Context, reservationID int64, deltaDays int) error {
	items, err := s.reservationRepo.GetLineItemsByReservation(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("%w: shiftSlots - get line items: %v", ErrInternal, err)
	}

	slotIDs := make([]int64, len(items))
	for i, item := range items {
		slotIDs[i] = item.SlotID
	}

	slots, err := s.slotRepo.GetByIDs(ctx, slotIDs)
	if err != nil {
		return fmt.Errorf("%w: shiftSlots - get slots: %v", ErrInternal, err)
	}

	for _, slot := range slots {
		newDate := domain.DateOnly(slot.Date).AddDate(0, 0, deltaDays)
		if err := s.slotRepo.UpdateDate(ctx, slot.ID, newDate); err != nil {
			return fmt.Errorf("%w: shiftSlots - update slot %d: %v", ErrInternal, slot.ID, err)
		}
	}

	return nil
}
