package register_payment

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/service/reservations/models"
	registerPayment "github.com/m04kA/SMC-SpaBookingService/internal/usecase/register_payment"
)

// PaymentEventRequest HTTP request model
// amount принимается строкой или числом: "15000.50" / 15000.5
type PaymentEventRequest struct {
	Type   string          `json:"type"` // payment | cancel
	Amount decimal.Decimal `json:"amount"`
}

// PaymentStateResponse HTTP response model
type PaymentStateResponse struct {
	ReservationID int64  `json:"reservationId"`
	Total         string `json:"total"`
	AmountPaid    string `json:"amountPaid"`
	PaymentState  string `json:"paymentState"`
	ReleasedLines int64  `json:"releasedLines"`
}

func (r *PaymentEventRequest) ToUseCaseRequest(reservationID int64) *registerPayment.Request {
	return &registerPayment.Request{
		ReservationID: reservationID,
		Type:          registerPayment.EventType(r.Type),
		Amount:        r.Amount,
	}
}

func FromUseCaseResponse(resp *registerPayment.Response) *PaymentStateResponse {
	return &PaymentStateResponse{
		ReservationID: resp.ReservationID,
		Total:         models.Money(resp.Total),
		AmountPaid:    models.Money(resp.AmountPaid),
		PaymentState:  string(resp.PaymentState),
		ReleasedLines: resp.ReleasedLines,
	}
}
