package recompute_total

import (
	"context"
	"errors"
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

func TestUseCase_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	aggregator := totals.NewAggregator(store, store, packs.NewMatcher(logger.Nop{}), metrics.Nop{}, logger.Nop{})
	uc := NewUseCase(store, aggregator, &memstore.TxManager{}, logger.Nop{})

	reservation, err := store.Create(ctx, &domain.Reservation{ClientID: 1, PaymentState: domain.PaymentPending})
	require.NoError(t, err)

	store.AddPack(&domain.DiscountPack{
		Name:           "Tina + Cabaña",
		DiscountAmount: decimal.NewFromInt(10000),
		RequiredKinds:  []domain.ServiceKind{domain.KindTina, domain.KindLodging},
		MinNights:      1,
		Priority:       5,
		Active:         true,
	})

	// Строки без явного типа классифицируются по названию
	saturday := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)
	for _, l := range []struct {
		name  string
		price int64
	}{{"Tina de madera", 25000}, {"Cabaña Los Coihues", 70000}} {
		_, err := store.CreateServiceLine(ctx, &domain.ReservationLine{
			ReservationID:   reservation.ID,
			ServiceID:       l.price,
			ServiceName:     l.name,
			Date:            saturday,
			StartTime:       "15:00",
			Persons:         1,
			UnitPriceFrozen: decimal.NewFromInt(l.price),
			SlotOrdinal:     1,
			Status:          domain.LineActive,
		})
		require.NoError(t, err)
	}

	first, err := uc.Execute(ctx, &Request{ReservationID: reservation.ID})
	require.NoError(t, err)
	second, err := uc.Execute(ctx, &Request{ReservationID: reservation.ID})
	require.NoError(t, err)

	assert.True(t, first.Total.Equal(decimal.NewFromInt(85000)))
	assert.True(t, second.Total.Equal(first.Total))
	require.Len(t, second.Discounts, 1)
	assert.Equal(t, first.Discounts[0].PackID, second.Discounts[0].PackID)

	stored, err := store.ListDiscounts(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestUseCase_Errors(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	aggregator := totals.NewAggregator(store, store, packs.NewMatcher(logger.Nop{}), metrics.Nop{}, logger.Nop{})
	uc := NewUseCase(store, aggregator, &memstore.TxManager{}, logger.Nop{})

	_, err := uc.Execute(ctx, &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{ReservationID: 5})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	reservation, err := store.Create(ctx, &domain.Reservation{ClientID: 1, PaymentState: domain.PaymentPending})
	require.NoError(t, err)
	store.FailNext["ListActive"] = errors.New("timeout")

	_, err = uc.Execute(ctx, &Request{ReservationID: reservation.ID})
	assert.ErrorIs(t, err, ErrInternal)
}
