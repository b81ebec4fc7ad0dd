package blocks

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// CreateDayBlockRequest запрос на блокировку дня
type CreateDayBlockRequest struct {
	ServiceID int64
	Date      time.Time
	Reason    *string
	ActorID   int64 // Сотрудник, выполняющий действие
}

// CreateSlotBlockRequest запрос на блокировку слота
type CreateSlotBlockRequest struct {
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
	ActorID   int64
}
