package payment

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

// Repository репозиторий для работы с платежами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платеж по резервации
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("reservation_id", "payment_method_id", "amount", "payment_date").
		Values(p.ReservationID, p.PaymentMethodID, p.Amount, p.PaymentDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetByReservation получает платеж по резервации
func (r *Repository) GetByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "reservation_id", "payment_method_id", "amount", "payment_date").
		From("payments").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservation - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Payment
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.ReservationID, &p.PaymentMethodID, &p.Amount, &p.PaymentDate,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservation - scan payment: %v", ErrScanRow, err)
	}

	return &p, nil
}

// DeleteByReservation удаляет платежи резервации.
// Используется только каскадным удалением pendiente-резервации.
func (r *Repository) DeleteByReservation(ctx context.Context, reservationID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("payments").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByReservation - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByReservation - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
