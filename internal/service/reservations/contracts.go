package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	LoadLines(ctx context.Context, reservation *domain.Reservation) error
	ListActiveLinesByServiceDate(ctx context.Context, serviceID int64, date time.Time) ([]*domain.ReservationLine, error)
}

// CatalogRepository интерфейс чтения услуг
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BlockRepository интерфейс чтения блокировок для календаря
type BlockRepository interface {
	GetDayBlock(ctx context.Context, serviceID int64, date time.Time) (*domain.DayBlock, error)
	ListActiveSlotBlocks(ctx context.Context, serviceID int64, date time.Time) ([]*domain.SlotBlock, error)
}

// OccupancyCounter интерфейс подсчета занятости слотов
type OccupancyCounter interface {
	CountActiveByTime(ctx context.Context, serviceID int64, date time.Time) (map[types.TimeString]int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
