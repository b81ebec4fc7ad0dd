package add_product_line

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/service/reservations/models"
	addProductLine "github.com/m04kA/SMC-SpaBookingService/internal/usecase/add_product_line"
)

// AddProductLineRequest HTTP request model
type AddProductLineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// AddProductLineResponse HTTP response model
type AddProductLineResponse struct {
	Line      models.ProductLineResponse `json:"line"`
	Total     string                     `json:"total"`
	Discounts []models.DiscountResponse  `json:"discounts"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addProductLine.Response) *AddProductLineResponse {
	return &AddProductLineResponse{
		Line: models.ProductLineResponse{
			ID:              resp.Line.ID,
			ProductID:       resp.Line.ProductID,
			ProductName:     resp.Line.ProductName,
			Quantity:        resp.Line.Quantity,
			UnitPriceFrozen: models.Money(resp.Line.UnitPriceFrozen),
			Subtotal:        models.Money(resp.Line.Subtotal()),
		},
		Total:     models.Money(resp.Total),
		Discounts: models.FromDomainDiscounts(resp.Discounts),
	}
}
