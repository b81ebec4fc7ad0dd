package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// ListGiftCardLines получает подарочные карты резервации
func (r *Repository) ListGiftCardLines(ctx context.Context, reservationID int64) ([]*domain.GiftCardLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "reservation_id", "code", "amount", "created_at").
		From("gift_card_lines").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListGiftCardLines - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListGiftCardLines - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]*domain.GiftCardLine, 0)
	for rows.Next() {
		var line domain.GiftCardLine
		var createdAt sql.NullTime

		if err := rows.Scan(&line.ID, &line.ReservationID, &line.Code, &line.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListGiftCardLines - scan line: %v", ErrScanRow, err)
		}

		line.CreatedAt = createdAt.Time
		lines = append(lines, &line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListGiftCardLines - rows error: %v", ErrScanRow, err)
	}

	return lines, nil
}

// ListDiscounts получает примененные скидки резервации
func (r *Repository) ListDiscounts(ctx context.Context, reservationID int64) ([]*domain.AppliedDiscount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "reservation_id", "pack_id", "pack_name", "amount", "line_ids", "created_at").
		From("applied_discounts").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDiscounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDiscounts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	discounts := make([]*domain.AppliedDiscount, 0)
	for rows.Next() {
		var discount domain.AppliedDiscount
		var lineIDs pq.Int64Array
		var createdAt sql.NullTime

		if err := rows.Scan(
			&discount.ID,
			&discount.ReservationID,
			&discount.PackID,
			&discount.PackName,
			&discount.Amount,
			&lineIDs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListDiscounts - scan discount: %v", ErrScanRow, err)
		}

		discount.LineIDs = []int64(lineIDs)
		discount.CreatedAt = createdAt.Time
		discounts = append(discounts, &discount)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDiscounts - rows error: %v", ErrScanRow, err)
	}

	return discounts, nil
}

// ReplaceDiscounts заменяет набор примененных скидок резервации
// Старые строки удаляются, новые вставляются: повторный пересчет не создает дубликатов
func (r *Repository) ReplaceDiscounts(ctx context.Context, reservationID int64, discounts []*domain.AppliedDiscount) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("applied_discounts").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceDiscounts - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceDiscounts - execute delete: %v", ErrExecQuery, err)
	}

	if len(discounts) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("applied_discounts").
		Columns("reservation_id", "pack_id", "pack_name", "amount", "line_ids")

	for _, d := range discounts {
		builder = builder.Values(reservationID, d.PackID, d.PackName, d.Amount, pq.Array(d.LineIDs))
	}

	query, args, err = builder.Suffix("RETURNING id, created_at").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceDiscounts - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReplaceDiscounts - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// PostgreSQL возвращает строки RETURNING в порядке VALUES
	i := 0
	for rows.Next() {
		var createdAt sql.NullTime
		if i >= len(discounts) {
			break
		}
		if err := rows.Scan(&discounts[i].ID, &createdAt); err != nil {
			return fmt.Errorf("%w: ReplaceDiscounts - scan id: %v", ErrScanRow, err)
		}
		discounts[i].ReservationID = reservationID
		discounts[i].CreatedAt = createdAt.Time
		i++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: ReplaceDiscounts - rows error: %v", ErrScanRow, err)
	}

	return nil
}
