package add_service_line

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/reservations/models"
	addServiceLine "github.com/m04kA/SMC-SpaBookingService/internal/usecase/add_service_line"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// AddServiceLineRequest HTTP request model
type AddServiceLineRequest struct {
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	Persons   int    `json:"persons"`
}

// AddServiceLineResponse HTTP response model
type AddServiceLineResponse struct {
	Line      models.ServiceLineResponse `json:"line"`
	Total     string                     `json:"total"`
	Discounts []models.DiscountResponse  `json:"discounts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AddServiceLineRequest) ToUseCaseRequest(reservationID int64) (*addServiceLine.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &addServiceLine.Request{
		ReservationID: reservationID,
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     startTime,
		Persons:       r.Persons,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addServiceLine.Response) *AddServiceLineResponse {
	return &AddServiceLineResponse{
		Line:      models.FromDomainServiceLine(resp.Line),
		Total:     models.Money(resp.Total),
		Discounts: models.FromDomainDiscounts(resp.Discounts),
	}
}
