package get_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/service/reservations/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, serviceID int64, date time.Time, actor models.Actor) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
