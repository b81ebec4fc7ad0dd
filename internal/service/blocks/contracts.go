package blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	CreateDayBlock(ctx context.Context, block *domain.DayBlock) (*domain.DayBlock, error)
	DeleteDayBlock(ctx context.Context, serviceID int64, date time.Time) error
	GetDayBlock(ctx context.Context, serviceID int64, date time.Time) (*domain.DayBlock, error)
	IsDayBlocked(ctx context.Context, serviceID int64, date time.Time) (bool, error)
	CreateSlotBlock(ctx context.Context, block *domain.SlotBlock) (*domain.SlotBlock, error)
	DeactivateSlotBlock(ctx context.Context, serviceID int64, date time.Time, startTime types.TimeString) error
	IsSlotBlocked(ctx context.Context, serviceID int64, date time.Time, startTime types.TimeString) (bool, error)
	ListActiveSlotBlocks(ctx context.Context, serviceID int64, date time.Time) ([]*domain.SlotBlock, error)
}

// CatalogReader интерфейс чтения услуг каталога
type CatalogReader interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
