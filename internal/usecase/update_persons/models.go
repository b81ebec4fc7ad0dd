package update_persons

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Request модель запроса изменения количества персон
type Request struct {
	ReservationID int64
	LineID        int64
	Persons       int
}

// Response обновленная строка и новый итог
type Response struct {
	Line      *domain.ReservationLine
	Total     decimal.Decimal
	Discounts []*domain.AppliedDiscount
}
