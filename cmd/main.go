package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/SFC-ReservaService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/SFC-ReservaService/internal/api/handlers/check_tournament_availability"
	createReservationHandler "github.com/m04kA/SFC-ReservaService/internal/api/handlers/create_reservation"
	createTournamentHandler "github.com/m04kA/SFC-ReservaService/internal/api/handlers/create_tournament"
	deleteReservationHandler "github.com/m04kA/SFC-ReservaService/internal/api/handlers/delete_reservation"
	finalizeExpiredHandler "github.com/m04kA/SFC-ReservaService/internal/api/handlers/finalize_expired"
	getReservationHandler "github.com/m04kA/SFC-ReservaService/internal/api/handlers/get_reservation"
	getReservationBySlotHandler "github.com/m04kA/SFC-ReservaService/internal/api/handlers/get_reservation_by_slot"
	updateReservationHandler "github.com/m04kA/SFC-ReservaService/internal/api/handlers/update_reservation"
	"github.com/m04kA/SFC-ReservaService/internal/api/middleware"
	"github.com/m04kA/SFC-ReservaService/internal/config"
	catalogRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/catalog"
	paymentRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/slot"
	tournamentRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/tournament"
	customerServiceClient "github.com/m04kA/SFC-ReservaService/internal/integrations/customerservice"
	pricingService "github.com/m04kA/SFC-ReservaService/internal/service/pricing"
	reservationsService "github.com/m04kA/SFC-ReservaService/internal/service/reservations"
	schedulerService "github.com/m04kA/SFC-ReservaService/internal/service/scheduler"
	checkAvailabilityUC "github.com/m04kA/SFC-ReservaService/internal/usecase/check_tournament_availability"
	createReservationUC "github.com/m04kA/SFC-ReservaService/internal/usecase/create_reservation"
	createTournamentUC "github.com/m04kA/SFC-ReservaService/internal/usecase/create_tournament"
	"github.com/m04kA/SFC-ReservaService/pkg/logger"
	"github.com/m04kA/SFC-ReservaService/pkg/metrics"
	"github.com/m04kA/SFC-ReservaService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SFC-ReservaService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиента сервиса клиентов
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	log.Info("CustomerService client initialized (url=%s, timeout=%ds)",
		cfg.CustomerService.URL, cfg.CustomerService.Timeout)

	// Инициализируем репозитории и менеджер транзакций
	slotRepository := slotRepo.NewRepository(db)
	reservationRepository := reservationRepo.NewRepository(db)
	paymentRepository := paymentRepo.NewRepository(db)
	tournamentRepository := tournamentRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)
	txManager := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(catalogRepository, log)
	schedulerSvc := schedulerService.NewService(slotRepository, catalogRepository, pricingSvc, log)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		slotRepository,
		paymentRepository,
		customerClient,
		txManager,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		slotRepository,
		paymentRepository,
		catalogRepository,
		pricingSvc,
		customerClient,
		txManager,
		log,
	)
	createTournamentUseCase := createTournamentUC.NewUseCase(
		tournamentRepository,
		reservationRepository,
		slotRepository,
		paymentRepository,
		catalogRepository,
		schedulerSvc,
		customerClient,
		txManager,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(catalogRepository, schedulerSvc, log)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, metricsCollector, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getReservationBySlot := getReservationBySlotHandler.NewHandler(reservationsSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationsSvc, log)
	finalizeExpired := finalizeExpiredHandler.NewHandler(reservationsSvc, metricsCollector, log)
	createTournament := createTournamentHandler.NewHandler(createTournamentUseCase, metricsCollector, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка осуществимости турнира без бронирования
	api.HandleFunc("/tournaments/check-availability", checkAvailability.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Резервации ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/finalize-expired", finalizeExpired.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/by-slot", getReservationBySlot.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Турниры ---
	protected.HandleFunc("/tournaments", createTournament.Handle).Methods(http.MethodPost)

	// Периодическая финализация просроченных резерваций
	stopSweepCh := make(chan struct{})
	if cfg.Sweep.Enabled {
		interval := time.Duration(cfg.Sweep.IntervalMinutes) * time.Minute
		go runExpirySweep(reservationsSvc, metricsCollector, log, interval, stopSweepCh)
		log.Info("Expiry sweep started with interval %s", interval)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Sweep.Enabled {
		close(stopSweepCh)
		log.Info("Expiry sweep stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}

// runExpirySweep периодически финализирует просроченные резервации:
// pagada -> finalizada, pendiente -> cancelada с освобождением слотов
func runExpirySweep(
	svc *reservationsService.Service,
	m *metrics.Metrics,
	log *logger.Logger,
	interval time.Duration,
	stopCh <-chan struct{},
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			count, err := svc.FinalizeExpired(context.Background())
			if err != nil {
				log.Error("Expiry sweep failed: %v", err)
				continue
			}
			m.AddSweepTransitions(count)
			if count > 0 {
				log.Info("Expiry sweep transitioned %d reservations", count)
			}
		case <-stopCh:
			return
		}
	}
}
