package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"name",
	"duration_minutes",
	"price_base",
	"capacity_min",
	"capacity_max",
	"max_simultaneous",
	"weekly_slots",
	"visible_in_matrix",
	"service_kind",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога (только чтение услуг и товаров)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	return r.getService(ctx, id, false)
}

// GetServiceForUpdate получает услугу с блокировкой строки (SELECT ... FOR UPDATE)
// Должен вызываться внутри транзакции: блокировка сериализует добавление строк на услугу
func (r *Repository) GetServiceForUpdate(ctx context.Context, id int64) (*domain.Service, error) {
	return r.getService(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getService(ctx context.Context, id int64, forUpdate bool) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var (
		service     domain.Service
		weeklySlots []byte
		kind        sql.NullString
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.PriceBase,
		&service.CapacityMin,
		&service.CapacityMax,
		&service.MaxSimultaneous,
		&weeklySlots,
		&service.VisibleInMatrix,
		&kind,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	// Шаблон валидируется при загрузке, а не при каждом чтении слотов
	if len(weeklySlots) > 0 {
		if err := json.Unmarshal(weeklySlots, &service.WeeklySlots); err != nil {
			return nil, fmt.Errorf("%w: service id=%d: %v", ErrInvalidTemplate, id, err)
		}
	}
	if service.WeeklySlots == nil {
		service.WeeklySlots = domain.WeeklySlots{}
	}

	if kind.Valid {
		if k, ok := domain.ParseServiceKind(kind.String); ok {
			service.Kind = &k
		}
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// GetProductByID получает товар по ID
func (r *Repository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price", "active").
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProductByID - build select query: %v", ErrBuildQuery, err)
	}

	var product domain.Product
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Active,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProductByID - scan product: %v", ErrScanRow, err)
	}

	return &product, nil
}
