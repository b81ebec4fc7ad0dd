package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CanTransition проверяет переход pending -> partial -> paid, отмена из любого незавершенного состояния
func (s PaymentState) CanTransition(to PaymentState) bool {
	switch s {
	case PaymentPending:
		return to == PaymentPartial || to == PaymentPaid || to == PaymentCancelled
	case PaymentPartial:
		return to == PaymentPartial || to == PaymentPaid || to == PaymentCancelled
	default:
		return false
	}
}

// StateForPaidAmount вычисляет состояние по оплаченной сумме относительно актуального total
func StateForPaidAmount(paid, total decimal.Decimal) PaymentState {
	switch {
	case paid.GreaterThanOrEqual(total) && paid.IsPositive():
		return PaymentPaid
	case total.IsZero() && paid.IsZero():
		return PaymentPending
	case paid.IsPositive():
		return PaymentPartial
	default:
		return PaymentPending
	}
}

// ApplyPayment регистрирует платеж; total должен быть пересчитан до вызова
func (r *Reservation) ApplyPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be positive", ErrInvalidPaymentTransition)
	}

	paid := r.AmountPaid.Add(amount)
	next := StateForPaidAmount(paid, r.Total)
	if !r.PaymentState.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidPaymentTransition, r.PaymentState, next)
	}

	r.AmountPaid = paid
	r.PaymentState = next
	return nil
}

// Cancel переводит резервацию в cancelled
func (r *Reservation) Cancel() error {
	if !r.PaymentState.CanTransition(PaymentCancelled) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidPaymentTransition, r.PaymentState, PaymentCancelled)
	}
	r.PaymentState = PaymentCancelled
	return nil
}
