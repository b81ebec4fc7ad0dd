package remove_line

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// LineKind тип удаляемой строки
type LineKind string

const (
	LineService LineKind = "service"
	LineProduct LineKind = "product"
)

// Request модель запроса удаления строки
type Request struct {
	ReservationID int64
	LineID        int64
	Kind          LineKind
}

// Response новый итог резервации
type Response struct {
	Total     decimal.Decimal
	Discounts []*domain.AppliedDiscount
}
