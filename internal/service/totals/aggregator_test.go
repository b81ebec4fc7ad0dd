package totals

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
	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

var friday = time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

type countingMetrics struct {
	applied []string
}

func (m *countingMetrics) RecordDiscountApplied(pack string) {
	m.applied = append(m.applied, pack)
}

func kind(k domain.ServiceKind) *domain.ServiceKind {
	return &k
}

func setup(t *testing.T) (*Aggregator, *memstore.Store, *countingMetrics, *domain.Reservation) {
	t.Helper()

	store := memstore.New()
	m := &countingMetrics{}
	agg := NewAggregator(store, store, packs.NewMatcher(logger.Nop{}), m, logger.Nop{})

	reservation, err := store.Create(context.Background(), &domain.Reservation{
		ClientID:     10,
		PaymentState: domain.PaymentPending,
	})
	require.NoError(t, err)

	return agg, store, m, reservation
}

func addLine(t *testing.T, store *memstore.Store, reservationID int64, k domain.ServiceKind, price int64, persons int) *domain.ReservationLine {
	t.Helper()

	line, err := store.CreateServiceLine(context.Background(), &domain.ReservationLine{
		ReservationID:   reservationID,
		ServiceID:       int64(len(k)) * 100,
		ServiceName:     string(k),
		ServiceKind:     kind(k),
		Date:            friday,
		StartTime:       "10:00",
		Persons:         persons,
		UnitPriceFrozen: decimal.NewFromInt(price),
		SlotOrdinal:     1,
		Status:          domain.LineActive,
	})
	require.NoError(t, err)
	return line
}

func TestComputeTotal(t *testing.T) {
	reservation := &domain.Reservation{
		ServiceLines: []*domain.ReservationLine{
			{UnitPriceFrozen: decimal.NewFromInt(100), Persons: 2, Status: domain.LineActive},
			{UnitPriceFrozen: decimal.NewFromInt(999), Persons: 1, Status: domain.LineCancelled},
		},
		ProductLines:  []*domain.ProductLine{{UnitPriceFrozen: decimal.RequireFromString("2.50"), Quantity: 4}},
		GiftCardLines: []*domain.GiftCardLine{{Amount: decimal.NewFromInt(50)}},
		Discounts:     []*domain.AppliedDiscount{{Amount: decimal.NewFromInt(30)}},
	}

	assert.True(t, ComputeTotal(reservation).Equal(decimal.NewFromInt(230)))
}

func TestComputeTotal_NotClamped(t *testing.T) {
	reservation := &domain.Reservation{
		ServiceLines: []*domain.ReservationLine{
			{UnitPriceFrozen: decimal.NewFromInt(10), Persons: 1, Status: domain.LineActive},
		},
		Discounts: []*domain.AppliedDiscount{{Amount: decimal.NewFromInt(25)}},
	}

	assert.True(t, ComputeTotal(reservation).Equal(decimal.NewFromInt(-15)))
}

func TestAggregator_RecomputeIsIdempotent(t *testing.T) {
	agg, store, m, reservation := setup(t)
	ctx := context.Background()

	store.AddPack(&domain.DiscountPack{
		Name:             "Viernes romántico",
		DiscountAmount:   decimal.NewFromInt(5000),
		RequiredKinds:    []domain.ServiceKind{domain.KindTina, domain.KindMassage},
		ValidWeekdays:    []time.Weekday{time.Friday},
		SameDateRequired: true,
		Priority:         1,
		Active:           true,
	})

	tina := addLine(t, store, reservation.ID, domain.KindTina, 20000, 2)
	massage := addLine(t, store, reservation.ID, domain.KindMassage, 30000, 1)

	first, err := agg.Recompute(ctx, reservation)
	require.NoError(t, err)
	assert.True(t, first.Total.Equal(decimal.NewFromInt(65000)), first.Total.String())
	require.Len(t, first.Discounts, 1)
	assert.ElementsMatch(t, []int64{tina.ID, massage.ID}, first.Discounts[0].LineIDs)

	header, err := store.GetByID(ctx, reservation.ID)
	require.NoError(t, err)
	second, err := agg.Recompute(ctx, header)
	require.NoError(t, err)

	assert.True(t, first.Total.Equal(second.Total))
	require.Len(t, second.Discounts, 1)

	stored, err := store.ListDiscounts(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	saved, err := store.GetByID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.True(t, saved.Total.Equal(decimal.NewFromInt(65000)))

	// Метрика учитывает только впервые примененный пакет
	assert.Equal(t, []string{"Viernes romántico"}, m.applied)
}

func TestAggregator_DiscountRemovedWhenLineRemoved(t *testing.T) {
	agg, store, _, reservation := setup(t)
	ctx := context.Background()

	store.AddPack(&domain.DiscountPack{
		Name:           "Tina + masaje",
		DiscountAmount: decimal.NewFromInt(5000),
		RequiredKinds:  []domain.ServiceKind{domain.KindTina, domain.KindMassage},
		Active:         true,
	})

	addLine(t, store, reservation.ID, domain.KindTina, 20000, 1)
	massage := addLine(t, store, reservation.ID, domain.KindMassage, 30000, 1)

	result, err := agg.Recompute(ctx, reservation)
	require.NoError(t, err)
	require.Len(t, result.Discounts, 1)

	require.NoError(t, store.DeleteServiceLine(ctx, massage.ID))

	result, err = agg.Recompute(ctx, reservation)
	require.NoError(t, err)
	assert.Empty(t, result.Discounts)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(20000)))
}

func TestAggregator_IncludesProductsAndGiftCards(t *testing.T) {
	agg, store, _, reservation := setup(t)
	ctx := context.Background()

	addLine(t, store, reservation.ID, domain.KindOther, 1000, 3)
	_, err := store.CreateProductLine(ctx, &domain.ProductLine{
		ReservationID: reservation.ID, ProductID: 1, Quantity: 2, UnitPriceFrozen: decimal.NewFromInt(1500),
	})
	require.NoError(t, err)
	store.AddGiftCard(reservation.ID, "GC-1", decimal.NewFromInt(10000))

	result, err := agg.Recompute(ctx, reservation)
	require.NoError(t, err)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(16000)), result.Total.String())
}

func TestAggregator_PersistFailure(t *testing.T) {
	agg, store, _, reservation := setup(t)

	store.FailNext["UpdateTotals"] = errors.New("deadlock detected")

	_, err := agg.Recompute(context.Background(), reservation)
	assert.ErrorIs(t, err, ErrInternal)
}
