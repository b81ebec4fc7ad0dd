package pack

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository репозиторий пакетов скидок (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пакетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive получает все активные пакеты, упорядоченные по (priority desc, discount_amount desc)
func (r *Repository) ListActive(ctx context.Context) ([]*domain.DiscountPack, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"discount_amount",
		"required_kinds",
		"valid_weekdays",
		"same_date_required",
		"min_nights",
		"priority",
		"active",
		"valid_from",
		"valid_to",
	).
		From("discount_packs").
		Where(squirrel.Eq{"active": true}).
		OrderBy("priority DESC", "discount_amount DESC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	packs := make([]*domain.DiscountPack, 0)
	for rows.Next() {
		var (
			pack      domain.DiscountPack
			kinds     pq.StringArray
			weekdays  pq.Int64Array
			validFrom sql.NullTime
			validTo   sql.NullTime
		)

		if err := rows.Scan(
			&pack.ID,
			&pack.Name,
			&pack.DiscountAmount,
			&kinds,
			&weekdays,
			&pack.SameDateRequired,
			&pack.MinNights,
			&pack.Priority,
			&pack.Active,
			&validFrom,
			&validTo,
		); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan pack: %v", ErrScanRow, err)
		}

		pack.RequiredKinds = make([]domain.ServiceKind, 0, len(kinds))
		for _, k := range kinds {
			kind, ok := domain.ParseServiceKind(k)
			if !ok {
				return nil, fmt.Errorf("%w: ListActive - pack id=%d has unknown kind %q", ErrScanRow, pack.ID, k)
			}
			pack.RequiredKinds = append(pack.RequiredKinds, kind)
		}

		pack.ValidWeekdays = make([]time.Weekday, 0, len(weekdays))
		for _, d := range weekdays {
			if d < int64(time.Sunday) || d > int64(time.Saturday) {
				return nil, fmt.Errorf("%w: ListActive - pack id=%d has invalid weekday %d", ErrScanRow, pack.ID, d)
			}
			pack.ValidWeekdays = append(pack.ValidWeekdays, time.Weekday(d))
		}

		if validFrom.Valid {
			pack.ValidFrom = &validFrom.Time
		}
		if validTo.Valid {
			pack.ValidTo = &validTo.Time
		}

		packs = append(packs, &pack)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return packs, nil
}
