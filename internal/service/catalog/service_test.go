package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

func TestService_GetService(t *testing.T) {
	store := memstore.New()
	slots, err := domain.ParseWeeklySlots(map[string][]string{"sábado": {"18:00", "10:00"}})
	require.NoError(t, err)
	created := store.AddService(domain.Service{
		Name:            "Cabaña Los Coihues",
		DurationMinutes: 1440,
		PriceBase:       decimal.NewFromInt(85000),
		CapacityMin:     1,
		CapacityMax:     4,
		WeeklySlots:     slots,
	})

	svc := NewService(store, logger.Nop{})

	got, err := svc.GetService(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "lodging", got.Kind, "legacy record classified by name")
	assert.Equal(t, "85000.00", got.PriceBase)
	assert.Equal(t, 1, got.MaxSimultaneous)
	assert.False(t, got.ParallelBookings)

	payload, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"weeklySlots":{"saturday":["10:00","18:00"]}`)

	_, err = svc.GetService(context.Background(), 404)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.GetService(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
