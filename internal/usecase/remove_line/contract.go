package remove_line

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/totals"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error)
	GetServiceLine(ctx context.Context, lineID int64) (*domain.ReservationLine, error)
	DeleteServiceLine(ctx context.Context, lineID int64) error
	GetProductLine(ctx context.Context, lineID int64) (*domain.ProductLine, error)
	DeleteProductLine(ctx context.Context, lineID int64) error
}

// InventoryClient интерфейс возврата товара на склад
type InventoryClient interface {
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
