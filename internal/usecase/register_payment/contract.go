package register_payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/totals"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateTotals(ctx context.Context, id int64, total, amountPaid decimal.Decimal, state domain.PaymentState) error
	CancelServiceLines(ctx context.Context, reservationID int64) (int64, error)
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
