package register_payment

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// EventType тип платежного события
type EventType string

const (
	EventPayment EventType = "payment"
	EventCancel  EventType = "cancel"
)

// Request платежное событие от внешней системы оплаты
type Request struct {
	ReservationID int64
	Type          EventType
	Amount        decimal.Decimal // Только для payment
}

// Response состояние резервации после события
type Response struct {
	ReservationID int64
	Total         decimal.Decimal
	AmountPaid    decimal.Decimal
	PaymentState  domain.PaymentState
	ReleasedLines int64 // Освобожденные строки услуг при отмене
}
