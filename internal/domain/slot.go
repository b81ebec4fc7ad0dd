package domain

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// AvailableSlot слот шаблона услуги с учетом занятости
type AvailableSlot struct {
	StartTime      types.TimeString
	Occupancy      int  // Активные строки бронирования на слоте
	TotalSpots     int  // max_simultaneous услуги
	Blocked        bool // Слот заблокирован персоналом
	AvailableSpots int
}

// IsAvailable слот доступен, если он не заблокирован и занятость меньше max_simultaneous
func (s *AvailableSlot) IsAvailable() bool {
	return !s.Blocked && s.Occupancy < s.TotalSpots
}

// IsFull возвращает true, если свободных мест нет
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// OccupancyRate процент занятости слота (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.TotalSpots == 0 {
		return 0
	}
	return float64(s.Occupancy) / float64(s.TotalSpots) * 100
}

// Reason причина недоступности слота (ReasonNone для доступного)
func (s *AvailableSlot) Reason() UnavailableReason {
	switch {
	case s.Blocked:
		return ReasonSlotBlocked
	case s.Occupancy >= s.TotalSpots:
		return ReasonCapacityExhausted
	default:
		return ReasonNone
	}
}

// DayAvailability слоты услуги на дату
type DayAvailability struct {
	ServiceID int64
	Date      time.Time
	Blocked   bool            // Блокировка всего дня
	Slots     []AvailableSlot // Все слоты шаблона с деталями занятости, по возрастанию времени
}

// AvailableTimes время доступных слотов по возрастанию
func (d *DayAvailability) AvailableTimes() []types.TimeString {
	times := make([]types.TimeString, 0, len(d.Slots))
	if d.Blocked {
		return times
	}
	for i := range d.Slots {
		if d.Slots[i].IsAvailable() {
			times = append(times, d.Slots[i].StartTime)
		}
	}
	return times
}
