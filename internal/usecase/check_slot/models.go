package check_slot

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модель запроса проверки слота
type Request struct {
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
}

// Response результат проверки
type Response struct {
	Available bool
	Reason    domain.UnavailableReason // Пусто, если слот доступен
}
