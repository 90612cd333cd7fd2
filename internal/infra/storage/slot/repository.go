package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	"github.com/m04kA/SFC-ReservaService/pkg/psqlbuilder"
	"github.com/m04kA/SFC-ReservaService/pkg/txmanager"
)

// AvailableSlot строка выборки доступных слотов на дату,
// с данными корта и горизонта, нужными планировщику турнира
type AvailableSlot struct {
	SlotID     int64
	CourtID    int64
	ScheduleID int64
	CourtName  string
	StartTime  string
}

// Repository репозиторий для работы со слотами ("turnos")
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCourtScheduleDate получает слот по тройке (корт, горизонт, дата)
func (r *Repository) GetByCourtScheduleDate(ctx context.Context, courtID, scheduleID int64, date time.Time) (*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "court_id", "schedule_id", "slot_date", "status").
		From("slots").
		Where(squirrel.Eq{
			"court_id":    courtID,
			"schedule_id": scheduleID,
			"slot_date":   date,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtScheduleDate - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CourtID, &s.ScheduleID, &s.Date, &s.Status)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtScheduleDate - scan slot: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetByIDs получает слоты по списку идентификаторов
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "court_id", "schedule_id", "slot_date", "status").
		From("slots").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0, len(ids))
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(&s.ID, &s.CourtID, &s.ScheduleID, &s.Date, &s.Status); err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetAvailableByDate получает доступные слоты на дату вместе с данными корта и горизонта.
// Сортировка по времени начала, затем по корту - порядок, на который опирается
// правило приоритета одновременности у планировщика турнира.
// Если courtTypeIDs непустой, возвращаются только слоты кортов этих типов.
func (r *Repository) GetAvailableByDate(ctx context.Context, date time.Time, courtTypeIDs []int64) ([]*AvailableSlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"s.id",
		"s.court_id",
		"s.schedule_id",
		"c.name",
		"h.start_time",
	).
		From("slots s").
		Join("courts c ON c.id = s.court_id").
		Join("schedules h ON h.id = s.schedule_id").
		Where(squirrel.Eq{"s.slot_date": date, "s.status": domain.SlotAvailable, "c.active": true}).
		OrderBy("h.start_time ASC", "s.court_id ASC")

	if len(courtTypeIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"c.court_type_id": courtTypeIDs})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*AvailableSlot, 0)
	for rows.Next() {
		var row AvailableSlot
		if err := rows.Scan(&row.SlotID, &row.CourtID, &row.ScheduleID, &row.CourtName, &row.StartTime); err != nil {
			return nil, fmt.Errorf("%w: GetAvailableByDate - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailableByDate - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// EnsureForDate лениво материализует слоты на дату для всех пар (корт, горизонт).
// Уже существующие строки не трогаются: слоты никогда не пересоздаются,
// только переключают статус.
func (r *Repository) EnsureForDate(ctx context.Context, date time.Time, courtIDs, scheduleIDs []int64) error {
	if len(courtIDs) == 0 || len(scheduleIDs) == 0 {
		return nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns("court_id", "schedule_id", "slot_date", "status")
	for _, courtID := range courtIDs {
		for _, scheduleID := range scheduleIDs {
			insertBuilder = insertBuilder.Values(courtID, scheduleID, date, domain.SlotAvailable)
		}
	}
	insertBuilder = insertBuilder.Suffix("ON CONFLICT (court_id, schedule_id, slot_date) DO NOTHING")

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: EnsureForDate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: EnsureForDate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Claim занимает слот (корт, горизонт, дата) одним запросом.
// Несуществующий слот создается сразу занятым; существующий переводится в
// no_disponible только если он disponible. Отсутствие строки в результате
// означает, что слот уже занят - это и есть write-time re-check:
// перепроверка происходит в том же запросе, который переключает статус.
func (r *Repository) Claim(ctx context.Context, courtID, scheduleID int64, date time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("court_id", "schedule_id", "slot_date", "status").
		Values(courtID, scheduleID, date, domain.SlotUnavailable).
		Suffix("ON CONFLICT (court_id, schedule_id, slot_date) DO UPDATE SET status = ? WHERE slots.status = ? RETURNING id",
			domain.SlotUnavailable, domain.SlotAvailable).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Claim - build upsert query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrSlotNotAvailable
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Claim - execute upsert: %v", ErrExecQuery, err)
	}

	return id, nil
}

// ClaimByID занимает уже материализованный слот по id с re-check статуса
func (r *Repository) ClaimByID(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotUnavailable).
		Where(squirrel.Eq{"id": id, "status": domain.SlotAvailable}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClaimByID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ClaimByID - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ClaimByID - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotAvailable
	}

	return nil
}

// Release освобождает слоты, возвращая их в disponible.
// Вызывается при отмене резервации.
func (r *Repository) Release(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotAvailable).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateDate переносит слот на другую дату.
// Используется при сдвиге даты резервации: строка слота переезжает
// вместе с резервацией, новые слоты не создаются.
func (r *Repository) UpdateDate(ctx context.Context, id int64, newDate time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("slot_date", newDate).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}
