package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ServiceID       int64
	Date            time.Time
	DurationMinutes int
	Blocked         bool               // Блокировка всего дня
	Slots           []types.TimeString // Доступное время по возрастанию
	Details         []Slot             // Все слоты шаблона с занятостью
}

// Slot модель временного слота
type Slot struct {
	StartTime      types.TimeString         // Время начала слота (например, "10:00")
	AvailableSpots int                      // Количество свободных мест
	TotalSpots     int                      // Общее количество мест (max_simultaneous)
	Occupancy      int                      // Активные бронирования
	Blocked        bool                     // Слот заблокирован персоналом
	Available      bool
	Reason         domain.UnavailableReason // Пусто для доступного слота
	OccupancyRate  float64                  // Процент занятости 0-100
}
