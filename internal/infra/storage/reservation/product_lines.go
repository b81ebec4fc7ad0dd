package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

var productLineColumns = []string{
	"id",
	"reservation_id",
	"product_id",
	"product_name",
	"quantity",
	"unit_price_frozen",
	"created_at",
}

// CreateProductLine создает строку товара
func (r *Repository) CreateProductLine(ctx context.Context, line *domain.ProductLine) (*domain.ProductLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("product_lines").
		Columns("reservation_id", "product_id", "product_name", "quantity", "unit_price_frozen").
		Values(line.ReservationID, line.ProductID, line.ProductName, line.Quantity, line.UnitPriceFrozen).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateProductLine - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&line.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateProductLine - execute insert: %v", ErrExecQuery, err)
	}

	line.CreatedAt = createdAt.Time

	return line, nil
}

// GetProductLine получает строку товара по ID
func (r *Repository) GetProductLine(ctx context.Context, lineID int64) (*domain.ProductLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(productLineColumns...).
		From("product_lines").
		Where(squirrel.Eq{"id": lineID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProductLine - build select query: %v", ErrBuildQuery, err)
	}

	line, err := scanProductLine(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProductLine - scan line: %v", ErrScanRow, err)
	}

	return line, nil
}

// ListProductLines получает строки товаров резервации
func (r *Repository) ListProductLines(ctx context.Context, reservationID int64) ([]*domain.ProductLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(productLineColumns...).
		From("product_lines").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListProductLines - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProductLines - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]*domain.ProductLine, 0)
	for rows.Next() {
		line, err := scanProductLine(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListProductLines - scan line: %v", ErrScanRow, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProductLines - rows error: %v", ErrScanRow, err)
	}

	return lines, nil
}

// DeleteProductLine удаляет строку товара
func (r *Repository) DeleteProductLine(ctx context.Context, lineID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("product_lines").
		Where(squirrel.Eq{"id": lineID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteProductLine - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "DeleteProductLine", query, args)
}

func scanProductLine(row rowScanner) (*domain.ProductLine, error) {
	var line domain.ProductLine
	var createdAt sql.NullTime

	if err := row.Scan(
		&line.ID,
		&line.ReservationID,
		&line.ProductID,
		&line.ProductName,
		&line.Quantity,
		&line.UnitPriceFrozen,
		&createdAt,
	); err != nil {
		return nil, err
	}

	line.CreatedAt = createdAt.Time

	return &line, nil
}
