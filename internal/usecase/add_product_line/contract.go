package add_product_line

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/totals"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error)
	CreateProductLine(ctx context.Context, line *domain.ProductLine) (*domain.ProductLine, error)
}

// CatalogRepository интерфейс чтения товаров
type CatalogRepository interface {
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
}

// InventoryClient интерфейс клиента склада
type InventoryClient interface {
	Consume(ctx context.Context, productID int64, quantity int, key string) error
	Restore(ctx context.Context, productID int64, quantity int, key string) error
}

// TotalsAggregator интерфейс пересчета итога резервации
type TotalsAggregator interface {
	Recompute(ctx context.Context, reservation *domain.Reservation) (*totals.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
