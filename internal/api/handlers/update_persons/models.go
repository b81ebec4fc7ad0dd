package update_persons

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/service/reservations/models"
	updatePersons "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_persons"
)

// UpdatePersonsRequest HTTP request model
type UpdatePersonsRequest struct {
	Persons int `json:"persons"`
}

// UpdatePersonsResponse HTTP response model
type UpdatePersonsResponse struct {
	Line      models.ServiceLineResponse `json:"line"`
	Total     string                     `json:"total"`
	Discounts []models.DiscountResponse  `json:"discounts"`
}

func FromUseCaseResponse(resp *updatePersons.Response) *UpdatePersonsResponse {
	return &UpdatePersonsResponse{
		Line:      models.FromDomainServiceLine(resp.Line),
		Total:     models.Money(resp.Total),
		Discounts: models.FromDomainDiscounts(resp.Discounts),
	}
}
