package models

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// ServiceResponse определение услуги для клиентов движка
type ServiceResponse struct {
	ID               int64              `json:"id"`
	Name             string             `json:"name"`
	Kind             string             `json:"kind"`
	DurationMinutes  int                `json:"durationMinutes"`
	PriceBase        string             `json:"priceBase"`
	CapacityMin      int                `json:"capacityMin"`
	CapacityMax      int                `json:"capacityMax"`
	MaxSimultaneous  int                `json:"maxSimultaneous"`
	ParallelBookings bool               `json:"parallelBookings"` // Слот принимает несколько бронирований
	WeeklySlots      domain.WeeklySlots `json:"weeklySlots"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:               s.ID,
		Name:             s.Name,
		Kind:             string(domain.ResolveKind(s.Kind, s.Name)),
		DurationMinutes:  s.DurationMinutes,
		PriceBase:        s.PriceBase.StringFixed(2),
		CapacityMin:      s.CapacityMin,
		CapacityMax:      s.CapacityMax,
		MaxSimultaneous:  s.EffectiveMaxSimultaneous(),
		ParallelBookings: s.SupportsParallelBookings(),
		WeeklySlots:      s.WeeklySlots,
	}
}
