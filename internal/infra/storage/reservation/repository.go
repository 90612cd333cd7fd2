package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	"github.com/m04kA/SFC-ReservaService/pkg/psqlbuilder"
	"github.com/m04kA/SFC-ReservaService/pkg/txmanager"
)

// UpdateFields поля резервации для частичного обновления.
// nil-поле не трогается.
type UpdateFields struct {
	TotalAmount     *decimal.Decimal
	ReservationDate *time.Time
	Status          *domain.ReservationStatus
}

// Repository репозиторий для работы с резервациями и их позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую резервацию
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns("customer_id", "tournament_id", "total_amount", "reservation_date", "status").
		Values(res.CustomerID, res.TournamentID, res.TotalAmount, res.ReservationDate, res.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает резервацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "customer_id", "tournament_id", "total_amount", "reservation_date", "status", "created_at", "updated_at",
	).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetBySlotID получает резервацию, чья позиция ссылается на слот.
// Отмененные резервации пропускаются: их позиции остаются в БД после
// освобождения слота
func (r *Repository) GetBySlotID(ctx context.Context, slotID int64) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"r.id", "r.customer_id", "r.tournament_id", "r.total_amount", "r.reservation_date", "r.status", "r.created_at", "r.updated_at",
	).
		From("reservations r").
		Join("reservation_items i ON i.reservation_id = r.id").
		Where(squirrel.Eq{"i.slot_id": slotID}).
		Where(squirrel.NotEq{"r.status": domain.StatusCancelled}).
		OrderBy("r.id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ListByStatuses получает все резервации в указанных статусах.
// Используется sweep-ом для выборки нетерминальных резерваций.
func (r *Repository) ListByStatuses(ctx context.Context, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(
		"id", "customer_id", "tournament_id", "total_amount", "reservation_date", "status", "created_at", "updated_at",
	).
		From("reservations").
		Where(squirrel.Eq{"status": statusStrings}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatuses - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatuses - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := r.scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByStatuses - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStatuses - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// Update частично обновляет резервацию
func (r *Repository) Update(ctx context.Context, id int64, fields UpdateFields) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if fields.TotalAmount != nil {
		updateBuilder = updateBuilder.Set("total_amount", *fields.TotalAmount)
	}
	if fields.ReservationDate != nil {
		updateBuilder = updateBuilder.Set("reservation_date", *fields.ReservationDate)
	}
	if fields.Status != nil {
		updateBuilder = updateBuilder.Set("status", *fields.Status)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Delete физически удаляет резервацию.
// Позиции и платеж должны быть удалены до вызова (каскад управляется сервисом).
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// CreateLineItem создает позицию резервации.
// Цена позиции фиксируется на момент транзакции и далее не пересчитывается.
func (r *Repository) CreateLineItem(ctx context.Context, item *domain.LineItem) (*domain.LineItem, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_items").
		Columns("reservation_id", "slot_id", "price").
		Values(item.ReservationID, item.SlotID, item.Price).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLineItem - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateLineItem - execute insert: %v", ErrExecQuery, err)
	}

	return item, nil
}

// GetLineItemsByReservation получает позиции резервации
func (r *Repository) GetLineItemsByReservation(ctx context.Context, reservationID int64) ([]*domain.LineItem, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "reservation_id", "slot_id", "price").
		From("reservation_items").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLineItemsByReservation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLineItemsByReservation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.LineItem, 0)
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.ID, &item.ReservationID, &item.SlotID, &item.Price); err != nil {
			return nil, fmt.Errorf("%w: GetLineItemsByReservation - scan row: %v", ErrScanRow, err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetLineItemsByReservation - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// DeleteLineItemsByReservation удаляет все позиции резервации
func (r *Repository) DeleteLineItemsByReservation(ctx context.Context, reservationID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservation_items").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteLineItemsByReservation - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteLineItemsByReservation - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var tournamentID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.CustomerID,
		&tournamentID,
		&res.TotalAmount,
		&res.ReservationDate,
		&res.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tournamentID.Valid {
		res.TournamentID = &tournamentID.Int64
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}
