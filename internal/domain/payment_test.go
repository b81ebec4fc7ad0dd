package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservation_ApplyPayment(t *testing.T) {
	r := &Reservation{Total: decimal.NewFromInt(100), PaymentState: PaymentPending}

	require.NoError(t, r.ApplyPayment(decimal.NewFromInt(40)))
	assert.Equal(t, PaymentPartial, r.PaymentState)

	require.NoError(t, r.ApplyPayment(decimal.NewFromInt(60)))
	assert.Equal(t, PaymentPaid, r.PaymentState)
	assert.True(t, r.AmountPaid.Equal(decimal.NewFromInt(100)))

	err := r.ApplyPayment(decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInvalidPaymentTransition)
}

func TestReservation_ApplyPaymentRejectsNonPositive(t *testing.T) {
	r := &Reservation{Total: decimal.NewFromInt(100), PaymentState: PaymentPending}
	assert.ErrorIs(t, r.ApplyPayment(decimal.Zero), ErrInvalidPaymentTransition)
}

func TestReservation_Cancel(t *testing.T) {
	r := &Reservation{PaymentState: PaymentPartial}
	require.NoError(t, r.Cancel())
	assert.Equal(t, PaymentCancelled, r.PaymentState)
	assert.False(t, r.IsOpen())

	paid := &Reservation{PaymentState: PaymentPaid}
	assert.ErrorIs(t, paid.Cancel(), ErrInvalidPaymentTransition)
}

func TestSlotUnavailableError(t *testing.T) {
	err := NewSlotUnavailable(ReasonDayBlocked)

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, ReasonDayBlocked, UnavailableReasonOf(err))
	assert.Equal(t, ReasonNone, UnavailableReasonOf(ErrCapacity))
}
