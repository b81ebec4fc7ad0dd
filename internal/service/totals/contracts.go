package totals

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	LoadLines(ctx context.Context, reservation *domain.Reservation) error
	ReplaceDiscounts(ctx context.Context, reservationID int64, discounts []*domain.AppliedDiscount) error
	UpdateTotals(ctx context.Context, id int64, total, amountPaid decimal.Decimal, state domain.PaymentState) error
}

// PackRepository интерфейс чтения пакетов скидок
type PackRepository interface {
	ListActive(ctx context.Context) ([]*domain.DiscountPack, error)
}

// PackMatcher интерфейс подбора пакетов
type PackMatcher interface {
	Match(packs []*domain.DiscountPack, items []domain.PackLineItem) []domain.PackMatch
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	RecordDiscountApplied(pack string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
