package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// BlockRepository интерфейс чтения блокировок
type BlockRepository interface {
	IsDayBlocked(ctx context.Context, serviceID int64, date time.Time) (bool, error)
	IsSlotBlocked(ctx context.Context, serviceID int64, date time.Time, startTime types.TimeString) (bool, error)
	ListActiveSlotBlocks(ctx context.Context, serviceID int64, date time.Time) ([]*domain.SlotBlock, error)
}

// OccupancyRepository интерфейс подсчета активных строк на слотах
type OccupancyRepository interface {
	CountActiveAtSlot(ctx context.Context, serviceID int64, date time.Time, startTime types.TimeString) (int, error)
	CountActiveByTime(ctx context.Context, serviceID int64, date time.Time) (map[types.TimeString]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
