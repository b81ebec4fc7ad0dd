package blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	blocksService "github.com/m04kA/SMC-SpaBookingService/internal/service/blocks"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

type BlockService interface {
	CreateDayBlock(ctx context.Context, req *blocksService.CreateDayBlockRequest) (*domain.DayBlock, error)
	DeleteDayBlock(ctx context.Context, serviceID int64, date time.Time, actorID int64) error
	CreateSlotBlock(ctx context.Context, req *blocksService.CreateSlotBlockRequest) (*domain.SlotBlock, error)
	DeleteSlotBlock(ctx context.Context, serviceID int64, date time.Time, startTime types.TimeString, actorID int64) error
	DayBlock(ctx context.Context, serviceID int64, date time.Time) (*domain.DayBlock, error)
	ListSlotBlocks(ctx context.Context, serviceID int64, date time.Time) ([]*domain.SlotBlock, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
