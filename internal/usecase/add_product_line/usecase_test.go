package add_product_line

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/integrations/inventory"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/packs"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/totals"
	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/metrics"
)

type movement struct {
	action    string
	productID int64
	quantity  int
	key       string
}

type fakeInventory struct {
	mu         sync.Mutex
	consumeErr error
	movements  []movement
}

func (f *fakeInventory) Consume(_ context.Context, productID int64, quantity int, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.consumeErr != nil {
		return f.consumeErr
	}
	f.movements = append(f.movements, movement{"consume", productID, quantity, key})
	return nil
}

func (f *fakeInventory) Restore(_ context.Context, productID int64, quantity int, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movements = append(f.movements, movement{"restore", productID, quantity, key})
	return nil
}

func setup(t *testing.T) (*UseCase, *memstore.Store, *fakeInventory, *domain.Reservation, *domain.Product) {
	t.Helper()

	store := memstore.New()
	inv := &fakeInventory{}
	aggregator := totals.NewAggregator(store, store, packs.NewMatcher(logger.Nop{}), metrics.Nop{}, logger.Nop{})
	uc := NewUseCase(store, store, inv, aggregator, &memstore.TxManager{}, logger.Nop{})

	reservation, err := store.Create(context.Background(), &domain.Reservation{ClientID: 5, PaymentState: domain.PaymentPending})
	require.NoError(t, err)

	product := store.AddProduct(domain.Product{Name: "Espumante", Price: decimal.NewFromInt(12000), Active: true})
	return uc, store, inv, reservation, product
}

func TestUseCase_AddsLineAndConsumesStock(t *testing.T) {
	uc, store, inv, reservation, product := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: reservation.ID, ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.NewFromInt(24000)))
	assert.Equal(t, "Espumante", resp.Line.ProductName)
	assert.Equal(t, []movement{{"consume", product.ID, 2, inventory.LineKey(resp.Line.ID)}}, inv.movements)

	saved, err := store.GetByID(context.Background(), reservation.ID)
	require.NoError(t, err)
	assert.True(t, saved.Total.Equal(decimal.NewFromInt(24000)))
}

func TestUseCase_OutOfStock(t *testing.T) {
	uc, _, inv, reservation, product := setup(t)
	inv.consumeErr = inventory.ErrInsufficientStock

	_, err := uc.Execute(context.Background(), &Request{ReservationID: reservation.ID, ProductID: product.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Empty(t, inv.movements)
}

func TestUseCase_RestoresStockWhenTransactionFails(t *testing.T) {
	uc, store, inv, reservation, product := setup(t)
	store.FailNext["UpdateTotals"] = errors.New("deadlock detected")

	_, err := uc.Execute(context.Background(), &Request{ReservationID: reservation.ID, ProductID: product.ID, Quantity: 3})
	assert.ErrorIs(t, err, ErrInternal)

	require.Len(t, inv.movements, 2)
	assert.Equal(t, "consume", inv.movements[0].action)
	assert.Equal(t, "restore", inv.movements[1].action)
	assert.Equal(t, inv.movements[0].key, inv.movements[1].key)
	assert.Equal(t, 3, inv.movements[1].quantity)
}

func TestUseCase_Rejections(t *testing.T) {
	uc, store, _, reservation, product := setup(t)
	ctx := context.Background()

	inactive := store.AddProduct(domain.Product{Name: "Retirado", Price: decimal.NewFromInt(1), Active: false})

	_, err := uc.Execute(ctx, &Request{ReservationID: reservation.ID, ProductID: product.ID, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{ReservationID: reservation.ID, ProductID: inactive.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = uc.Execute(ctx, &Request{ReservationID: reservation.ID, ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = uc.Execute(ctx, &Request{ReservationID: 999, ProductID: product.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	require.NoError(t, store.UpdateTotals(ctx, reservation.ID, decimal.Zero, decimal.Zero, domain.PaymentPaid))
	_, err = uc.Execute(ctx, &Request{ReservationID: reservation.ID, ProductID: product.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrReservationClosed)
}
