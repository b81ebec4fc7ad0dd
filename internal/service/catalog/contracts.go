package catalog

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// ServiceReader чтение услуг каталога (репозиторий или кеш поверх него)
type ServiceReader interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
