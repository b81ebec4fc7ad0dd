package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

var serviceLineColumns = []string{
	"id",
	"reservation_id",
	"service_id",
	"service_name",
	"service_kind",
	"line_date",
	"start_time",
	"persons",
	"unit_price_frozen",
	"slot_ordinal",
	"status",
	"assigned_provider",
	"created_at",
	"updated_at",
}

// CreateServiceLine создает строку услуги
// При гонке за одно и то же место слота возвращает ErrSlotTaken
func (r *Repository) CreateServiceLine(ctx context.Context, line *domain.ReservationLine) (*domain.ReservationLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var kind *string
	if line.ServiceKind != nil {
		k := string(*line.ServiceKind)
		kind = &k
	}

	query, args, err := psqlbuilder.Insert("reservation_lines").
		Columns(
			"reservation_id",
			"service_id",
			"service_name",
			"service_kind",
			"line_date",
			"start_time",
			"persons",
			"unit_price_frozen",
			"slot_ordinal",
			"status",
			"assigned_provider",
		).
		Values(
			line.ReservationID,
			line.ServiceID,
			line.ServiceName,
			kind,
			domain.DateOnly(line.Date),
			line.StartTime,
			line.Persons,
			line.UnitPriceFrozen,
			line.SlotOrdinal,
			line.Status,
			line.AssignedProvider,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateServiceLine - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&line.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: CreateServiceLine - execute insert: %v", ErrExecQuery, err)
	}

	line.Date = domain.DateOnly(line.Date)
	line.CreatedAt = createdAt.Time
	line.UpdatedAt = updatedAt.Time

	return line, nil
}

// GetServiceLine получает строку услуги по ID
func (r *Repository) GetServiceLine(ctx context.Context, lineID int64) (*domain.ReservationLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceLineColumns...).
		From("reservation_lines").
		Where(squirrel.Eq{"id": lineID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceLine - build select query: %v", ErrBuildQuery, err)
	}

	line, err := scanServiceLine(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceLine - scan line: %v", ErrScanRow, err)
	}

	return line, nil
}

// ListServiceLines получает все строки услуг резервации (включая отмененные)
func (r *Repository) ListServiceLines(ctx context.Context, reservationID int64) ([]*domain.ReservationLine, error) {
	return r.listServiceLines(ctx, "ListServiceLines",
		squirrel.Eq{"reservation_id": reservationID},
		"line_date ASC", "start_time ASC", "id ASC")
}

// ListActiveLinesByServiceDate получает активные строки услуги на дату (календарь персонала)
func (r *Repository) ListActiveLinesByServiceDate(ctx context.Context, serviceID int64, date time.Time) ([]*domain.ReservationLine, error) {
	return r.listServiceLines(ctx, "ListActiveLinesByServiceDate",
		squirrel.Eq{"service_id": serviceID, "line_date": domain.DateOnly(date), "status": domain.LineActive},
		"start_time ASC", "slot_ordinal ASC")
}

func (r *Repository) listServiceLines(ctx context.Context, op string, where squirrel.Eq, orderBy ...string) ([]*domain.ReservationLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceLineColumns...).
		From("reservation_lines").
		Where(where).
		OrderBy(orderBy...).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	lines := make([]*domain.ReservationLine, 0)
	for rows.Next() {
		line, err := scanServiceLine(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan line: %v", ErrScanRow, op, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return lines, nil
}

// CountActiveAtSlot количество активных строк на слоте (занятость)
func (r *Repository) CountActiveAtSlot(ctx context.Context, serviceID int64, date time.Time, startTime types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservation_lines").
		Where(squirrel.Eq{
			"service_id": serviceID,
			"line_date":  domain.DateOnly(date),
			"start_time": startTime,
			"status":     domain.LineActive,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveAtSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveAtSlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveByTime занятость всех слотов услуги на дату одним запросом
func (r *Repository) CountActiveByTime(ctx context.Context, serviceID int64, date time.Time) (map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time", "COUNT(*)").
		From("reservation_lines").
		Where(squirrel.Eq{
			"service_id": serviceID,
			"line_date":  domain.DateOnly(date),
			"status":     domain.LineActive,
		}).
		GroupBy("start_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByTime - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByTime - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.TimeString]int)
	for rows.Next() {
		var t types.TimeString
		var count int
		if err := rows.Scan(&t, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByTime - scan row: %v", ErrScanRow, err)
		}
		counts[t] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByTime - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// ActiveSlotOrdinals номера мест, занятые активными строками на слоте
func (r *Repository) ActiveSlotOrdinals(ctx context.Context, serviceID int64, date time.Time, startTime types.TimeString) ([]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_ordinal").
		From("reservation_lines").
		Where(squirrel.Eq{
			"service_id": serviceID,
			"line_date":  domain.DateOnly(date),
			"start_time": startTime,
			"status":     domain.LineActive,
		}).
		OrderBy("slot_ordinal ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ActiveSlotOrdinals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ActiveSlotOrdinals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ordinals := make([]int, 0)
	for rows.Next() {
		var ordinal int
		if err := rows.Scan(&ordinal); err != nil {
			return nil, fmt.Errorf("%w: ActiveSlotOrdinals - scan ordinal: %v", ErrScanRow, err)
		}
		ordinals = append(ordinals, ordinal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ActiveSlotOrdinals - rows error: %v", ErrScanRow, err)
	}

	return ordinals, nil
}

// UpdateLinePersons обновляет количество персон в строке услуги
func (r *Repository) UpdateLinePersons(ctx context.Context, lineID int64, persons int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservation_lines").
		Set("persons", persons).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": lineID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateLinePersons - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateLinePersons", query, args)
}

// DeleteServiceLine удаляет строку услуги, освобождая место в слоте
func (r *Repository) DeleteServiceLine(ctx context.Context, lineID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservation_lines").
		Where(squirrel.Eq{"id": lineID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteServiceLine - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "DeleteServiceLine", query, args)
}

// CancelServiceLines переводит все активные строки резервации в cancelled
// Отмененные строки не учитываются в занятости слотов
func (r *Repository) CancelServiceLines(ctx context.Context, reservationID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservation_lines").
		Set("status", domain.LineCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reservation_id": reservationID, "status": domain.LineActive}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CancelServiceLines - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelServiceLines - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelServiceLines - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrLineNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanServiceLine(row rowScanner) (*domain.ReservationLine, error) {
	var (
		line      domain.ReservationLine
		kind      sql.NullString
		provider  sql.NullInt64
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	if err := row.Scan(
		&line.ID,
		&line.ReservationID,
		&line.ServiceID,
		&line.ServiceName,
		&kind,
		&line.Date,
		&line.StartTime,
		&line.Persons,
		&line.UnitPriceFrozen,
		&line.SlotOrdinal,
		&line.Status,
		&provider,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if kind.Valid {
		if k, ok := domain.ParseServiceKind(kind.String); ok {
			line.ServiceKind = &k
		}
	}
	if provider.Valid {
		p := provider.Int64
		line.AssignedProvider = &p
	}

	line.CreatedAt = createdAt.Time
	line.UpdatedAt = updatedAt.Time

	return &line, nil
}
