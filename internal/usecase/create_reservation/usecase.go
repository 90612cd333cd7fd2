package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	catalogRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/catalog"
	slotRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/slot"
	customerClient "github.com/m04kA/SFC-ReservaService/internal/integrations/customerservice"
	"github.com/m04kA/SFC-ReservaService/internal/service/pricing"
)

// UseCase use case для создания резервации
type UseCase struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	paymentRepo     PaymentRepository
	catalogRepo     CatalogRepository
	pricingService  PricingService
	customerClient  CustomerServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	paymentRepo PaymentRepository,
	catalogRepo CatalogRepository,
	pricingService PricingService,
	customerClient CustomerServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		paymentRepo:     paymentRepo,
		catalogRepo:     catalogRepo,
		pricingService:  pricingService,
		customerClient:  customerClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// pricedItem позиция с ценой, зафиксированной на этапе валидации
type pricedItem struct {
	courtID    int64
	scheduleID int64
	date       time.Time
	price      decimal.Decimal
}

// Execute выполняет use case создания резервации.
// Протокол двухфазный: сначала валидация и расчет цен без транзакции,
// затем сериализуемая транзакция, в которой каждый слот выкупается
// одним UPDATE с повторной проверкой статуса. Занятый слот откатывает
// всю резервацию целиком.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: customer=%d, method=%d, items=%d",
		req.CustomerID, req.PaymentMethodID, len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата каждой позиции не может быть в прошлом
	for _, item := range req.Items {
		if err := validateDate(item.Date, now); err != nil {
			uc.logger.Warn("CreateReservation: item date %s is in the past", item.Date.Format(domain.DateFormat))
			return nil, err
		}
	}

	// 3. Проверяем клиента. Недоступность сервиса клиентов не блокирует
	// бронирование, подтвержденное отсутствие клиента - блокирует
	if _, err := uc.customerClient.GetCustomerWithGracefulDegradation(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerClient.ErrCustomerNotFound) {
			uc.logger.Warn("CreateReservation: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateReservation: failed to check customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to check customer: %v", ErrInternal, err)
	}

	// 4. Фаза валидации: справочники, предварительная доступность, цены
	priced, total, err := uc.validateAndPrice(ctx, req)
	if err != nil {
		return nil, err
	}

	// Датой резервации становится самая ранняя дата позиции
	reservationDate := priced[0].date
	for _, p := range priced[1:] {
		if p.date.Before(reservationDate) {
			reservationDate = p.date
		}
	}

	// 5. Метод оплаты определяет начальный статус резервации
	method, err := uc.catalogRepo.GetPaymentMethod(ctx, req.PaymentMethodID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPaymentMethodNotFound) {
			uc.logger.Warn("CreateReservation: payment method id=%d not found", req.PaymentMethodID)
			return nil, ErrPaymentMethodNotFound
		}
		uc.logger.Error("CreateReservation: failed to get payment method id=%d: %v", req.PaymentMethodID, err)
		return nil, fmt.Errorf("%w: failed to get payment method: %v", ErrInternal, err)
	}
	initialStatus := domain.InitialStatusForMethod(method)

	var (
		created *domain.Reservation
		items   []ItemResponse
		payment *domain.Payment
	)

	// 6. Фаза записи: сериализуемая транзакция с повторной проверкой слотов
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Материализуем строки слотов, группируя позиции по датам
		byDate := make(map[time.Time][]pricedItem)
		for _, p := range priced {
			byDate[p.date] = append(byDate[p.date], p)
		}
		for itemDate, group := range byDate {
			courtIDs := make([]int64, len(group))
			scheduleIDs := make([]int64, len(group))
			for i, p := range group {
				courtIDs[i] = p.courtID
				scheduleIDs[i] = p.scheduleID
			}
			if err := uc.slotRepo.EnsureForDate(txCtx, itemDate, courtIDs, scheduleIDs); err != nil {
				uc.logger.Error("CreateReservation: failed to ensure slots: %v", err)
				return fmt.Errorf("%w: failed to ensure slots: %v", ErrInternal, err)
			}
		}

		// 6.2. Создаем резервацию
		reservation, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			CustomerID:      req.CustomerID,
			TotalAmount:     total,
			ReservationDate: reservationDate,
			Status:          initialStatus,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 6.3. Выкупаем каждый слот с повторной проверкой статуса.
		// Занятый слот означает проигранную гонку: вся транзакция откатывается
		items = make([]ItemResponse, 0, len(priced))
		for _, p := range priced {
			slotID, err := uc.slotRepo.Claim(txCtx, p.courtID, p.scheduleID, p.date)
			if err != nil {
				if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
					uc.logger.Warn("CreateReservation: slot court=%d schedule=%d date=%s taken concurrently",
						p.courtID, p.scheduleID, p.date.Format(domain.DateFormat))
					return ErrSlotNotAvailable
				}
				uc.logger.Error("CreateReservation: failed to claim slot: %v", err)
				return fmt.Errorf("%w: failed to claim slot: %v", ErrInternal, err)
			}

			item, err := uc.reservationRepo.CreateLineItem(txCtx, &domain.LineItem{
				ReservationID: reservation.ID,
				SlotID:        slotID,
				Price:         p.price,
			})
			if err != nil {
				uc.logger.Error("CreateReservation: failed to create line item: %v", err)
				return fmt.Errorf("%w: failed to create line item: %v", ErrInternal, err)
			}

			items = append(items, ItemResponse{
				ID:         item.ID,
				SlotID:     slotID,
				CourtID:    p.courtID,
				ScheduleID: p.scheduleID,
				Date:       p.date,
				Price:      p.price,
			})
		}

		// 6.4. Один платеж на резервацию
		payment, err = uc.paymentRepo.Create(txCtx, &domain.Payment{
			ReservationID:   reservation.ID,
			PaymentMethodID: req.PaymentMethodID,
			Amount:          total,
			PaymentDate:     now,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		created = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, status=%s, total=%s",
		created.ID, created.Status, created.TotalAmount.String())

	return &Response{
		ID:              created.ID,
		CustomerID:      created.CustomerID,
		TotalAmount:     created.TotalAmount,
		ReservationDate: created.ReservationDate,
		Status:          string(created.Status),
		Items:           items,
		PaymentID:       payment.ID,
		CreatedAt:       created.CreatedAt,
	}, nil
}

// validateAndPrice проверяет справочники и предварительную доступность каждой
// позиции и фиксирует цены. Выполняется вне транзакции: это быстрый отсев,
// решающая проверка доступности происходит при выкупе слота
func (uc *UseCase) validateAndPrice(ctx context.Context, req *Request) ([]pricedItem, decimal.Decimal, error) {
	priced := make([]pricedItem, 0, len(req.Items))
	total := decimal.Zero
	priceCache := make(map[int64]decimal.Decimal)

	for _, item := range req.Items {
		itemDate := domain.DateOnly(item.Date)
		court, err := uc.catalogRepo.GetCourt(ctx, item.CourtID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrCourtNotFound) {
				uc.logger.Warn("CreateReservation: court id=%d not found", item.CourtID)
				return nil, decimal.Zero, ErrCourtNotFound
			}
			uc.logger.Error("CreateReservation: failed to get court id=%d: %v", item.CourtID, err)
			return nil, decimal.Zero, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
		}
		if !court.Active {
			uc.logger.Warn("CreateReservation: court id=%d is inactive", item.CourtID)
			return nil, decimal.Zero, ErrCourtNotFound
		}

		if _, err := uc.catalogRepo.GetSchedule(ctx, item.ScheduleID); err != nil {
			if errors.Is(err, catalogRepo.ErrScheduleNotFound) {
				uc.logger.Warn("CreateReservation: schedule id=%d not found", item.ScheduleID)
				return nil, decimal.Zero, ErrScheduleNotFound
			}
			uc.logger.Error("CreateReservation: failed to get schedule id=%d: %v", item.ScheduleID, err)
			return nil, decimal.Zero, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// Предварительная проверка доступности: отсутствие строки слота
		// означает, что слот еще не материализован и свободен
		slot, err := uc.slotRepo.GetByCourtScheduleDate(ctx, item.CourtID, item.ScheduleID, itemDate)
		if err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Error("CreateReservation: failed to get slot: %v", err)
			return nil, decimal.Zero, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}
		if slot != nil && slot.Status != domain.SlotAvailable {
			uc.logger.Warn("CreateReservation: slot court=%d schedule=%d date=%s is not available",
				item.CourtID, item.ScheduleID, itemDate.Format(domain.DateFormat))
			return nil, decimal.Zero, ErrSlotNotAvailable
		}

		price, ok := priceCache[item.CourtID]
		if !ok {
			price, err = uc.pricingService.Price(ctx, item.CourtID)
			if err != nil {
				if errors.Is(err, pricing.ErrCourtNotFound) || errors.Is(err, pricing.ErrCourtTypeNotFound) {
					return nil, decimal.Zero, ErrCourtNotFound
				}
				uc.logger.Error("CreateReservation: failed to price court id=%d: %v", item.CourtID, err)
				return nil, decimal.Zero, fmt.Errorf("%w: failed to price court: %v", ErrInternal, err)
			}
			priceCache[item.CourtID] = price
		}

		priced = append(priced, pricedItem{
			courtID:    item.CourtID,
			scheduleID: item.ScheduleID,
			date:       itemDate,
			price:      price,
		})
		total = total.Add(price)
	}

	return priced, total, nil
}
