package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository репозиторий резерваций и их строк
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пустую резервацию
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns("client_id", "total", "amount_paid", "payment_state").
		Values(reservation.ClientID, reservation.Total, reservation.AmountPaid, reservation.PaymentState).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает заголовок резервации (без строк)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate получает заголовок резервации с блокировкой строки
// Все изменения строк одной резервации сериализуются на этой блокировке
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.get(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, id int64, forUpdate bool) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"id",
		"client_id",
		"total",
		"amount_paid",
		"payment_state",
		"created_at",
		"updated_at",
	).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.ClientID,
		&reservation.Total,
		&reservation.AmountPaid,
		&reservation.PaymentState,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// LoadLines заполняет строки услуг, товаров, подарочных карт и примененные скидки
func (r *Repository) LoadLines(ctx context.Context, reservation *domain.Reservation) error {
	serviceLines, err := r.ListServiceLines(ctx, reservation.ID)
	if err != nil {
		return err
	}

	productLines, err := r.ListProductLines(ctx, reservation.ID)
	if err != nil {
		return err
	}

	giftCards, err := r.ListGiftCardLines(ctx, reservation.ID)
	if err != nil {
		return err
	}

	discounts, err := r.ListDiscounts(ctx, reservation.ID)
	if err != nil {
		return err
	}

	reservation.ServiceLines = serviceLines
	reservation.ProductLines = productLines
	reservation.GiftCardLines = giftCards
	reservation.Discounts = discounts

	return nil
}

// UpdateTotals сохраняет итоговую сумму, оплаченную сумму и состояние оплаты
func (r *Repository) UpdateTotals(
	ctx context.Context,
	id int64,
	total decimal.Decimal,
	amountPaid decimal.Decimal,
	state domain.PaymentState,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("total", total).
		Set("amount_paid", amountPaid).
		Set("payment_state", state).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTotals - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateTotals - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateTotals - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}
