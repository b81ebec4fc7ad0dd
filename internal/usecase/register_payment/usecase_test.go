package register_payment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/packs"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/totals"
	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/metrics"
)

func setup(t *testing.T) (*UseCase, *memstore.Store, *domain.Reservation) {
	t.Helper()
	ctx := context.Background()

	store := memstore.New()
	aggregator := totals.NewAggregator(store, store, packs.NewMatcher(logger.Nop{}), metrics.Nop{}, logger.Nop{})
	uc := NewUseCase(store, aggregator, &memstore.TxManager{}, logger.Nop{})

	reservation, err := store.Create(ctx, &domain.Reservation{ClientID: 1, PaymentState: domain.PaymentPending})
	require.NoError(t, err)

	_, err = store.CreateServiceLine(ctx, &domain.ReservationLine{
		ReservationID:   reservation.ID,
		ServiceID:       10,
		ServiceName:     "Masaje descontracturante",
		Date:            time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		StartTime:       "11:00",
		Persons:         2,
		UnitPriceFrozen: decimal.NewFromInt(30000),
		SlotOrdinal:     1,
		Status:          domain.LineActive,
	})
	require.NoError(t, err)

	return uc, store, reservation
}

func TestUseCase_PartialThenPaid(t *testing.T) {
	uc, _, reservation := setup(t)
	ctx := context.Background()

	// Итог в хранилище еще не пересчитан (0), но переход оценивается по актуальной сумме
	resp, err := uc.Execute(ctx, &Request{ReservationID: reservation.ID, Type: EventPayment, Amount: decimal.NewFromInt(20000)})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPartial, resp.PaymentState)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(60000)))

	resp, err = uc.Execute(ctx, &Request{ReservationID: reservation.ID, Type: EventPayment, Amount: decimal.NewFromInt(40000)})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, resp.PaymentState)
	assert.True(t, resp.AmountPaid.Equal(decimal.NewFromInt(60000)))

	_, err = uc.Execute(ctx, &Request{ReservationID: reservation.ID, Type: EventCancel})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUseCase_CancelReleasesLines(t *testing.T) {
	uc, store, reservation := setup(t)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{ReservationID: reservation.ID, Type: EventCancel})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCancelled, resp.PaymentState)
	assert.Equal(t, int64(1), resp.ReleasedLines)

	count, err := store.CountActiveAtSlot(ctx, 10, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), "11:00")
	require.NoError(t, err)
	assert.Zero(t, count)

	saved, err := store.GetByID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCancelled, saved.PaymentState)
	assert.True(t, saved.Total.Equal(decimal.NewFromInt(60000)))

	_, err = uc.Execute(ctx, &Request{ReservationID: reservation.ID, Type: EventPayment, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUseCase_Validation(t *testing.T) {
	uc, _, reservation := setup(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{ReservationID: reservation.ID, Type: EventPayment, Amount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{ReservationID: reservation.ID, Type: "refund"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{ReservationID: 999, Type: EventCancel})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
