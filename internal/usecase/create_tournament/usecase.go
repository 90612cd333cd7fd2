package create_tournament

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	catalogRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/catalog"
	customerClient "github.com/m04kA/SFC-ReservaService/internal/integrations/customerservice"
	"github.com/m04kA/SFC-ReservaService/internal/service/scheduler"
)

// UseCase use case для создания турнира с массовым бронированием слотов
type UseCase struct {
	tournamentRepo  TournamentRepository
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	paymentRepo     PaymentRepository
	catalogRepo     CatalogRepository
	scheduler       SchedulerService
	customerClient  CustomerServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tournamentRepo TournamentRepository,
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	paymentRepo PaymentRepository,
	catalogRepo CatalogRepository,
	schedulerService SchedulerService,
	customerClient CustomerServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		tournamentRepo:  tournamentRepo,
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		paymentRepo:     paymentRepo,
		catalogRepo:     catalogRepo,
		scheduler:       schedulerService,
		customerClient:  customerClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания турнира.
// Турнир, команды, резервация, слоты всех матчей и платеж создаются
// в одной сериализуемой транзакции: нехватка хотя бы одного слота
// откатывает все целиком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateTournament: name=%q, customer=%d, teams=%d, window=%s..%s, pace=%d",
		req.Name, req.CustomerID, len(req.Teams),
		req.DateStart.Format(domain.DateFormat), req.DateEnd.Format(domain.DateFormat), req.MatchesPerDay)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateTournament: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Порядок дат и запрет прошлого
	if err := validateDates(req.DateStart, req.DateEnd, now); err != nil {
		uc.logger.Warn("CreateTournament: invalid dates %s..%s",
			req.DateStart.Format(domain.DateFormat), req.DateEnd.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Проверяем организатора
	if _, err := uc.customerClient.GetCustomerWithGracefulDegradation(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerClient.ErrCustomerNotFound) {
			uc.logger.Warn("CreateTournament: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateTournament: failed to check customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to check customer: %v", ErrInternal, err)
	}

	// 4. Типы кортов должны существовать
	for _, id := range req.CourtTypeIDs {
		if _, err := uc.catalogRepo.GetCourtType(ctx, id); err != nil {
			if errors.Is(err, catalogRepo.ErrCourtTypeNotFound) {
				uc.logger.Warn("CreateTournament: court type id=%d not found", id)
				return nil, ErrCourtTypeNotFound
			}
			uc.logger.Error("CreateTournament: failed to get court type id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get court type: %v", ErrInternal, err)
		}
	}

	// 5. Метод оплаты определяет начальный статус связанной резервации
	method, err := uc.catalogRepo.GetPaymentMethod(ctx, req.PaymentMethodID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPaymentMethodNotFound) {
			uc.logger.Warn("CreateTournament: payment method id=%d not found", req.PaymentMethodID)
			return nil, ErrPaymentMethodNotFound
		}
		uc.logger.Error("CreateTournament: failed to get payment method id=%d: %v", req.PaymentMethodID, err)
		return nil, fmt.Errorf("%w: failed to get payment method: %v", ErrInternal, err)
	}
	initialStatus := domain.InitialStatusForMethod(method)

	// 6. Осуществимость: темп не выше вместимости, окно вмещает все матчи
	totalMatches := uc.scheduler.TotalMatches(len(req.Teams))

	maxPerDay, err := uc.scheduler.MaxMatchesPerDay(ctx, len(req.Teams), req.CourtTypeIDs)
	if err != nil {
		uc.logger.Error("CreateTournament: failed to compute capacity: %v", err)
		return nil, fmt.Errorf("%w: failed to compute capacity: %v", ErrInternal, err)
	}
	if req.MatchesPerDay > maxPerDay {
		uc.logger.Warn("CreateTournament: pace %d exceeds capacity %d", req.MatchesPerDay, maxPerDay)
		return nil, fmt.Errorf("%w: requested %d, capacity %d", ErrInvalidMatchesPerDay, req.MatchesPerDay, maxPerDay)
	}

	dateStart := domain.DateOnly(req.DateStart)
	dateEnd := domain.DateOnly(req.DateEnd)

	daysNeeded := uc.scheduler.DaysNeeded(totalMatches, req.MatchesPerDay)
	windowDays := domain.DaysBetween(dateStart, dateEnd) + 1
	if daysNeeded > windowDays {
		uc.logger.Warn("CreateTournament: need %d days, window has %d", daysNeeded, windowDays)
		return nil, fmt.Errorf("%w: need %d days, window has %d", ErrDateRangeTooShort, daysNeeded, windowDays)
	}

	var (
		tournament  *domain.Tournament
		teams       []TeamResponse
		reservation *domain.Reservation
		payment     *domain.Payment
		matches     []MatchSlot
		total       decimal.Decimal
	)

	// 7. Сериализуемая транзакция: подбор и выкуп слотов согласованы
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Подбираем слоты под все матчи
		selected, err := uc.scheduler.SelectSlots(txCtx, scheduler.SelectParams{
			DateStart:     dateStart,
			DateEnd:       dateEnd,
			MatchesPerDay: req.MatchesPerDay,
			TotalMatches:  totalMatches,
			TeamCount:     len(req.Teams),
			CourtTypeIDs:  req.CourtTypeIDs,
		})
		if err != nil {
			uc.logger.Error("CreateTournament: failed to select slots: %v", err)
			return fmt.Errorf("%w: failed to select slots: %v", ErrInternal, err)
		}
		if len(selected) < totalMatches {
			uc.logger.Warn("CreateTournament: only %d of %d slots available", len(selected), totalMatches)
			return fmt.Errorf("%w: need %d, found %d", ErrInsufficientSlots, totalMatches, len(selected))
		}

		// 7.2. Создаем турнир и команды
		tournament, err = uc.tournamentRepo.Create(txCtx, &domain.Tournament{
			Name:      req.Name,
			DateStart: dateStart,
			DateEnd:   dateEnd,
		})
		if err != nil {
			uc.logger.Error("CreateTournament: failed to create tournament: %v", err)
			return fmt.Errorf("%w: failed to create tournament: %v", ErrInternal, err)
		}

		teams = make([]TeamResponse, 0, len(req.Teams))
		for _, t := range req.Teams {
			team, err := uc.tournamentRepo.CreateTeam(txCtx, &domain.Team{
				TournamentID: tournament.ID,
				Name:         t.Name,
				PlayerCount:  t.PlayerCount,
			})
			if err != nil {
				uc.logger.Error("CreateTournament: failed to create team %q: %v", t.Name, err)
				return fmt.Errorf("%w: failed to create team: %v", ErrInternal, err)
			}
			teams = append(teams, TeamResponse{ID: team.ID, Name: team.Name, PlayerCount: team.PlayerCount})
		}

		// 7.3. Резервация, связанная с турниром, на сумму цен выбранных слотов
		total = decimal.Zero
		for _, s := range selected {
			total = total.Add(s.Price)
		}

		reservation, err = uc.reservationRepo.Create(txCtx, &domain.Reservation{
			CustomerID:      req.CustomerID,
			TournamentID:    &tournament.ID,
			TotalAmount:     total,
			ReservationDate: dateStart,
			Status:          initialStatus,
		})
		if err != nil {
			uc.logger.Error("CreateTournament: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 7.4. Выкупаем каждый выбранный слот с повторной проверкой статуса
		matches = make([]MatchSlot, 0, len(selected))
		for _, s := range selected {
			if err := uc.slotRepo.ClaimByID(txCtx, s.SlotID); err != nil {
				uc.logger.Warn("CreateTournament: slot id=%d taken concurrently: %v", s.SlotID, err)
				return fmt.Errorf("%w: slot taken concurrently", ErrInsufficientSlots)
			}

			if _, err := uc.reservationRepo.CreateLineItem(txCtx, &domain.LineItem{
				ReservationID: reservation.ID,
				SlotID:        s.SlotID,
				Price:         s.Price,
			}); err != nil {
				uc.logger.Error("CreateTournament: failed to create line item: %v", err)
				return fmt.Errorf("%w: failed to create line item: %v", ErrInternal, err)
			}

			matches = append(matches, MatchSlot{
				SlotID:    s.SlotID,
				CourtID:   s.CourtID,
				CourtName: s.CourtName,
				StartTime: s.StartTime,
				Date:      s.Date,
				Price:     s.Price,
			})
		}

		// 7.5. Один платеж на всю резервацию турнира
		payment, err = uc.paymentRepo.Create(txCtx, &domain.Payment{
			ReservationID:   reservation.ID,
			PaymentMethodID: req.PaymentMethodID,
			Amount:          total,
			PaymentDate:     now,
		})
		if err != nil {
			uc.logger.Error("CreateTournament: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateTournament: successfully created tournament id=%d, reservation id=%d, %d matches, total=%s",
		tournament.ID, reservation.ID, len(matches), total.String())

	return &Response{
		ID:            tournament.ID,
		Name:          tournament.Name,
		DateStart:     tournament.DateStart,
		DateEnd:       tournament.DateEnd,
		Teams:         teams,
		TotalMatches:  totalMatches,
		ReservationID: reservation.ID,
		Status:        string(initialStatus),
		TotalAmount:   total,
		PaymentID:     payment.ID,
		Matches:       matches,
	}, nil
}
