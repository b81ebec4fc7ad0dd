package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Service услуга каталога, как её видит движок слотов
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	PriceBase       decimal.Decimal
	CapacityMin     int // Минимум персон в одном бронировании
	CapacityMax     int // Максимум персон в одном бронировании
	MaxSimultaneous int // Сколько независимых бронирований выдерживает один слот
	WeeklySlots     WeeklySlots
	VisibleInMatrix bool
	Kind            *ServiceKind // nil у legacy записей
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SlotsFor возвращает слоты шаблона на дату (пустой список, если день не настроен)
func (s *Service) SlotsFor(date time.Time) []types.TimeString {
	return s.WeeklySlots.For(date.Weekday())
}

// OffersSlot проверяет, что время присутствует в шаблоне на день недели даты
func (s *Service) OffersSlot(date time.Time, t types.TimeString) bool {
	for _, slot := range s.SlotsFor(date) {
		if slot == t {
			return true
		}
	}
	return false
}

// AcceptsPersons проверяет границы capacity_min/capacity_max
func (s *Service) AcceptsPersons(persons int) bool {
	return persons >= s.CapacityMin && persons <= s.CapacityMax
}

// EffectiveMaxSimultaneous max_simultaneous с защитой от некорректных данных (минимум 1)
func (s *Service) EffectiveMaxSimultaneous() int {
	if s.MaxSimultaneous < 1 {
		return DefaultMaxSimultaneous
	}
	return s.MaxSimultaneous
}

// SupportsParallelBookings возвращает true, если слот принимает несколько бронирований
func (s *Service) SupportsParallelBookings() bool {
	return s.EffectiveMaxSimultaneous() > 1
}

// Product товар склада (для строк товаров)
type Product struct {
	ID     int64
	Name   string
	Price  decimal.Decimal
	Active bool
}
