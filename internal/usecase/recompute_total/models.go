package recompute_total

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Request модель запроса пересчета
type Request struct {
	ReservationID int64
}

// Response итог и примененные скидки
type Response struct {
	ReservationID int64
	Total         decimal.Decimal
	Discounts     []*domain.AppliedDiscount
}
