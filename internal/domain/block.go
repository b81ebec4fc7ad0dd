package domain

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// DayBlock услуга полностью недоступна на дату
type DayBlock struct {
	ID        int64
	ServiceID int64
	Date      time.Time
	Reason    *string
	CreatedBy int64 // Сотрудник, создавший блокировку
	CreatedAt time.Time
}

// SlotBlock отключенный слот (дата + время), независимо от бронирований
type SlotBlock struct {
	ID        int64
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
	Active    bool
	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
