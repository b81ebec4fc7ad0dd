package add_service_line

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/totals"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error)
	ActiveSlotOrdinals(ctx context.Context, serviceID int64, date time.Time, startTime types.TimeString) ([]int, error)
	CreateServiceLine(ctx context.Context, line *domain.ReservationLine) (*domain.ReservationLine, error)
}

// CatalogRepository интерфейс чтения услуг с блокировкой
type CatalogRepository interface {
	GetServiceForUpdate(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityChecker интерфейс проверки доступности слота
type AvailabilityChecker interface {
	Check(ctx context.Context, service *domain.Service, date time.Time, startTime types.TimeString) error
}

// TotalsAggregator интерфейс пересчета итога резервации
type TotalsAggregator interface {
	Recompute(ctx context.Context, reservation *domain.Reservation) (*totals.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	RecordLineCreated(kind string)
	RecordSlotConflict(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
