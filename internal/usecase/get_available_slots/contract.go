package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// CatalogReader интерфейс чтения услуг (может быть закэширован)
type CatalogReader interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityResolver интерфейс расчета доступности слотов на дату
type AvailabilityResolver interface {
	AvailableSlots(ctx context.Context, service *domain.Service, date time.Time) (*domain.DayAvailability, error)
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
