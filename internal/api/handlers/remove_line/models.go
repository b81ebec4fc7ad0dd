package remove_line

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/service/reservations/models"
	removeLine "github.com/m04kA/SMC-SpaBookingService/internal/usecase/remove_line"
)

// TotalsResponse итог резервации после удаления строки
type TotalsResponse struct {
	Total     string                    `json:"total"`
	Discounts []models.DiscountResponse `json:"discounts"`
}

func FromUseCaseResponse(resp *removeLine.Response) *TotalsResponse {
	return &TotalsResponse{
		Total:     models.Money(resp.Total),
		Discounts: models.FromDomainDiscounts(resp.Discounts),
	}
}
