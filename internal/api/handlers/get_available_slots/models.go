package get_available_slots

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID       int64        `json:"serviceId"`
	Date            string       `json:"date"`
	DurationMinutes int          `json:"durationMinutes"`
	Blocked         bool         `json:"blocked"`
	Slots           []string     `json:"slots"`   // Доступное время по возрастанию
	Details         []SlotDetail `json:"details"` // Все слоты шаблона
}

// SlotDetail занятость одного слота
type SlotDetail struct {
	StartTime      string  `json:"startTime"`
	AvailableSpots int     `json:"availableSpots"`
	TotalSpots     int     `json:"totalSpots"`
	Occupancy      int     `json:"occupancy"`
	Blocked        bool    `json:"blocked"`
	Available      bool    `json:"available"`
	Reason         string  `json:"reason,omitempty"`
	OccupancyRate  float64 `json:"occupancyRate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, t := range resp.Slots {
		slots[i] = t.String()
	}

	details := make([]SlotDetail, len(resp.Details))
	for i, d := range resp.Details {
		details[i] = SlotDetail{
			StartTime:      d.StartTime.String(),
			AvailableSpots: d.AvailableSpots,
			TotalSpots:     d.TotalSpots,
			Occupancy:      d.Occupancy,
			Blocked:        d.Blocked,
			Available:      d.Available,
			Reason:         string(d.Reason),
			OccupancyRate:  d.OccupancyRate,
		}
	}

	return &AvailableSlotsResponse{
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Blocked:         resp.Blocked,
		Slots:           slots,
		Details:         details,
	}
}
