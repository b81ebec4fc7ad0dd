package block

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Repository репозиторий блокировок дней и слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateDayBlock блокирует услугу на дату
// Повторная блокировка той же даты не создает дубликат, а обновляет причину
func (r *Repository) CreateDayBlock(ctx context.Context, block *domain.DayBlock) (*domain.DayBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("day_blocks").
		Columns("service_id", "block_date", "reason", "created_by").
		Values(block.ServiceID, domain.DateOnly(block.Date), block.Reason, block.CreatedBy).
		Suffix("ON CONFLICT (service_id, block_date) DO UPDATE SET reason = EXCLUDED.reason RETURNING id, created_by, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateDayBlock - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &block.CreatedBy, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateDayBlock - execute insert: %v", ErrExecQuery, err)
	}

	block.Date = domain.DateOnly(block.Date)
	block.CreatedAt = createdAt.Time

	return block, nil
}

// DeleteDayBlock снимает блокировку дня
func (r *Repository) DeleteDayBlock(ctx context.Context, serviceID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("day_blocks").
		Where(squirrel.Eq{"service_id": serviceID, "block_date": domain.DateOnly(date)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteDayBlock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteDayBlock - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteDayBlock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// GetDayBlock получает блокировку дня
func (r *Repository) GetDayBlock(ctx context.Context, serviceID int64, date time.Time) (*domain.DayBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "service_id", "block_date", "reason", "created_by", "created_at").
		From("day_blocks").
		Where(squirrel.Eq{"service_id": serviceID, "block_date": domain.DateOnly(date)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDayBlock - build select query: %v", ErrBuildQuery, err)
	}

	var block domain.DayBlock
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&block.ServiceID,
		&block.Date,
		&block.Reason,
		&block.CreatedBy,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayBlock - scan block: %v", ErrScanRow, err)
	}

	block.CreatedAt = createdAt.Time

	return &block, nil
}

// IsDayBlocked проверяет наличие блокировки дня
func (r *Repository) IsDayBlocked(ctx context.Context, serviceID int64, date time.Time) (bool, error) {
	return r.exists(ctx, "IsDayBlocked", psqlbuilder.Select("1").
		From("day_blocks").
		Where(squirrel.Eq{"service_id": serviceID, "block_date": domain.DateOnly(date)}))
}

// CreateSlotBlock блокирует слот
// Ранее снятая блокировка того же слота активируется повторно
func (r *Repository) CreateSlotBlock(ctx context.Context, block *domain.SlotBlock) (*domain.SlotBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_blocks").
		Columns("service_id", "block_date", "start_time", "active", "created_by").
		Values(block.ServiceID, domain.DateOnly(block.Date), block.StartTime, true, block.CreatedBy).
		Suffix("ON CONFLICT (service_id, block_date, start_time) DO UPDATE " +
			"SET active = TRUE, created_by = EXCLUDED.created_by, updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSlotBlock - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSlotBlock - execute insert: %v", ErrExecQuery, err)
	}

	block.Date = domain.DateOnly(block.Date)
	block.Active = true
	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time

	return block, nil
}

// DeactivateSlotBlock снимает блокировку слота (active = false, запись сохраняется для истории)
func (r *Repository) DeactivateSlotBlock(ctx context.Context, serviceID int64, date time.Time, startTime types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_blocks").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"service_id": serviceID,
			"block_date": domain.DateOnly(date),
			"start_time": startTime,
			"active":     true,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeactivateSlotBlock - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeactivateSlotBlock - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeactivateSlotBlock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// IsSlotBlocked проверяет наличие активной блокировки слота
func (r *Repository) IsSlotBlocked(ctx context.Context, serviceID int64, date time.Time, startTime types.TimeString) (bool, error) {
	return r.exists(ctx, "IsSlotBlocked", psqlbuilder.Select("1").
		From("slot_blocks").
		Where(squirrel.Eq{
			"service_id": serviceID,
			"block_date": domain.DateOnly(date),
			"start_time": startTime,
			"active":     true,
		}))
}

// ListActiveSlotBlocks получает активные блокировки слотов услуги на дату
func (r *Repository) ListActiveSlotBlocks(ctx context.Context, serviceID int64, date time.Time) ([]*domain.SlotBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"block_date",
		"start_time",
		"active",
		"created_by",
		"created_at",
		"updated_at",
	).
		From("slot_blocks").
		Where(squirrel.Eq{"service_id": serviceID, "block_date": domain.DateOnly(date), "active": true}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveSlotBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveSlotBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.SlotBlock, 0)
	for rows.Next() {
		var block domain.SlotBlock
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&block.ID,
			&block.ServiceID,
			&block.Date,
			&block.StartTime,
			&block.Active,
			&block.CreatedBy,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListActiveSlotBlocks - scan block: %v", ErrScanRow, err)
		}

		block.CreatedAt = createdAt.Time
		block.UpdatedAt = updatedAt.Time
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveSlotBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// DeleteOlderThan удаляет блокировки дней и слотов с датой раньше before
// Возвращает общее количество удаленных записей
func (r *Repository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var total int64
	for _, table := range []string{"day_blocks", "slot_blocks"} {
		query, args, err := psqlbuilder.Delete(table).
			Where(squirrel.Lt{"block_date": domain.DateOnly(before)}).
			ToSql()

		if err != nil {
			return total, fmt.Errorf("%w: DeleteOlderThan - build delete query for %s: %v", ErrBuildQuery, table, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return total, fmt.Errorf("%w: DeleteOlderThan - execute delete for %s: %v", ErrExecQuery, table, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("%w: DeleteOlderThan - get rows affected for %s: %v", ErrExecQuery, table, err)
		}
		total += affected
	}

	return total, nil
}

func (r *Repository) exists(ctx context.Context, op string, builder squirrel.SelectBuilder) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s - scan: %v", ErrScanRow, op, err)
	}

	return true, nil
}
