package check_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// CatalogReader интерфейс чтения услуг
type CatalogReader interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityResolver интерфейс проверки одного слота
type AvailabilityResolver interface {
	IsSlotAvailable(ctx context.Context, service *domain.Service, date time.Time, startTime types.TimeString) (bool, domain.UnavailableReason, error)
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
