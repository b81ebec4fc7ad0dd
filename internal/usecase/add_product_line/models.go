package add_product_line

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Request модель запроса на добавление товара
type Request struct {
	ReservationID int64
	ProductID     int64
	Quantity      int
}

// Response созданная строка и новый итог
type Response struct {
	Line      *domain.ProductLine
	Total     decimal.Decimal
	Discounts []*domain.AppliedDiscount
}
