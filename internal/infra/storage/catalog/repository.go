package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	"github.com/m04kA/SFC-ReservaService/pkg/psqlbuilder"
	"github.com/m04kA/SFC-ReservaService/pkg/txmanager"
)

// DBExecutor интерфейс для выполнения запросов (*sql.DB или *sql.Tx)
type DBExecutor = txmanager.DBExecutor

// Repository репозиторий справочных данных: корты, типы кортов,
// горизонты расписания, дополнительные услуги, методы оплаты.
// Ядро читает эти сущности как read-only lookups.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCourt получает корт по ID
func (r *Repository) GetCourt(ctx context.Context, id int64) (*domain.Court, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "court_type_id", "name", "active").
		From("courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourt - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Court
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CourtTypeID, &c.Name, &c.Active)
	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourt - scan court: %v", ErrScanRow, err)
	}

	return &c, nil
}

// ListCourts получает активные корты, опционально отфильтрованные по типам
func (r *Repository) ListCourts(ctx context.Context, courtTypeIDs []int64) ([]*domain.Court, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "court_type_id", "name", "active").
		From("courts").
		Where(squirrel.Eq{"active": true}).
		OrderBy("id ASC")

	if len(courtTypeIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"court_type_id": courtTypeIDs})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCourts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCourts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courts := make([]*domain.Court, 0)
	for rows.Next() {
		var c domain.Court
		if err := rows.Scan(&c.ID, &c.CourtTypeID, &c.Name, &c.Active); err != nil {
			return nil, fmt.Errorf("%w: ListCourts - scan row: %v", ErrScanRow, err)
		}
		courts = append(courts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCourts - rows error: %v", ErrScanRow, err)
	}

	return courts, nil
}

// GetCourtType получает тип корта по ID
func (r *Repository) GetCourtType(ctx context.Context, id int64) (*domain.CourtType, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "description", "hourly_price").
		From("court_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourtType - build select query: %v", ErrBuildQuery, err)
	}

	var ct domain.CourtType
	err = executor.QueryRowContext(ctx, query, args...).Scan(&ct.ID, &ct.Description, &ct.HourlyPrice)
	if err == sql.ErrNoRows {
		return nil, ErrCourtTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourtType - scan court type: %v", ErrScanRow, err)
	}

	return &ct, nil
}

// GetSchedule получает горизонт расписания по ID
func (r *Repository) GetSchedule(ctx context.Context, id int64) (*domain.Schedule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "start_time", "end_time").
		From("schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Schedule
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.StartTime, &s.EndTime)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - scan schedule: %v", ErrScanRow, err)
	}

	return &s, nil
}

// ListSchedules получает все горизонты расписания по возрастанию времени начала
func (r *Repository) ListSchedules(ctx context.Context) ([]*domain.Schedule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "start_time", "end_time").
		From("schedules").
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSchedules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSchedules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(&s.ID, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("%w: ListSchedules - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSchedules - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// GetServiceIDsByCourt получает идентификаторы услуг, привязанных к корту
func (r *Repository) GetServiceIDsByCourt(ctx context.Context, courtID int64) ([]int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_id").
		From("court_services").
		Where(squirrel.Eq{"court_id": courtID}).
		OrderBy("service_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceIDsByCourt - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceIDsByCourt - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetServiceIDsByCourt - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServiceIDsByCourt - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// GetService получает дополнительную услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.FacilityService, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "description", "cost").
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.FacilityService
	err = executor.QueryRowContext(ctx, query, args...).Scan(&svc.ID, &svc.Description, &svc.Cost)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &svc, nil
}

// GetPaymentMethod получает метод оплаты по ID
func (r *Repository) GetPaymentMethod(ctx context.Context, id int64) (*domain.PaymentMethod, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "description").
		From("payment_methods").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPaymentMethod - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.PaymentMethod
	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.Description)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentMethodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPaymentMethod - scan payment method: %v", ErrScanRow, err)
	}

	return &m, nil
}
