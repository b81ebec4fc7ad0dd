package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// 2025-01-03 - пятница, 2025-01-07 - вторник
var (
	friday  = time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
)

func newService(t *testing.T, store *memstore.Store, maxSimultaneous int) *domain.Service {
	t.Helper()

	slots, err := domain.ParseWeeklySlots(map[string][]string{
		"viernes": {"14:00", "10:00", "12:00"},
		"sábado":  {"10:00"},
	})
	require.NoError(t, err)

	return store.AddService(domain.Service{
		Name:            "Masaje relajante",
		DurationMinutes: 60,
		PriceBase:       decimal.NewFromInt(30000),
		CapacityMin:     1,
		CapacityMax:     2,
		MaxSimultaneous: maxSimultaneous,
		WeeklySlots:     slots,
	})
}

func addLine(t *testing.T, store *memstore.Store, service *domain.Service, date time.Time, at string, ordinal int) {
	t.Helper()

	_, err := store.CreateServiceLine(context.Background(), &domain.ReservationLine{
		ReservationID: 1,
		ServiceID:     service.ID,
		Date:          date,
		StartTime:     types.MustTimeString(at),
		Persons:       1,
		SlotOrdinal:   ordinal,
		Status:        domain.LineActive,
	})
	require.NoError(t, err)
}

func TestResolver_AvailableSlotsSortedTemplate(t *testing.T) {
	store := memstore.New()
	service := newService(t, store, 1)
	r := NewResolver(store, store, logger.Nop{})

	day, err := r.AvailableSlots(context.Background(), service, friday)
	require.NoError(t, err)

	assert.False(t, day.Blocked)
	assert.Equal(t, []types.TimeString{"10:00", "12:00", "14:00"}, day.AvailableTimes())
}

func TestResolver_UnconfiguredWeekdayIsEmpty(t *testing.T) {
	store := memstore.New()
	service := newService(t, store, 1)
	r := NewResolver(store, store, logger.Nop{})

	day, err := r.AvailableSlots(context.Background(), service, tuesday)
	require.NoError(t, err)
	assert.Empty(t, day.AvailableTimes())
	assert.False(t, day.Blocked)
}

func TestResolver_FullSlotExcluded(t *testing.T) {
	store := memstore.New()
	service := newService(t, store, 2)
	r := NewResolver(store, store, logger.Nop{})

	addLine(t, store, service, friday, "12:00", 1)

	day, err := r.AvailableSlots(context.Background(), service, friday)
	require.NoError(t, err)
	assert.Contains(t, day.AvailableTimes(), types.TimeString("12:00"))
	assert.Equal(t, 1, day.Slots[1].AvailableSpots)

	addLine(t, store, service, friday, "12:00", 2)

	day, err = r.AvailableSlots(context.Background(), service, friday)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "14:00"}, day.AvailableTimes())
	assert.Equal(t, 2, day.Slots[1].Occupancy)
	assert.True(t, day.Slots[1].IsFull())

	err = r.Check(context.Background(), service, friday, "12:00")
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	assert.Equal(t, domain.ReasonCapacityExhausted, domain.UnavailableReasonOf(err))
}

func TestResolver_CancelledLinesDoNotCount(t *testing.T) {
	store := memstore.New()
	service := newService(t, store, 1)
	r := NewResolver(store, store, logger.Nop{})

	addLine(t, store, service, friday, "10:00", 1)
	_, err := store.CancelServiceLines(context.Background(), 1)
	require.NoError(t, err)

	require.NoError(t, r.Check(context.Background(), service, friday, "10:00"))
}

func TestResolver_DayBlockEmptiesDay(t *testing.T) {
	store := memstore.New()
	service := newService(t, store, 3)
	r := NewResolver(store, store, logger.Nop{})

	_, err := store.CreateDayBlock(context.Background(), &domain.DayBlock{ServiceID: service.ID, Date: friday, CreatedBy: 7})
	require.NoError(t, err)

	day, err := r.AvailableSlots(context.Background(), service, friday)
	require.NoError(t, err)
	assert.True(t, day.Blocked)
	assert.Empty(t, day.AvailableTimes())

	for _, at := range []types.TimeString{"10:00", "12:00", "14:00"} {
		err := r.Check(context.Background(), service, friday, at)
		assert.Equal(t, domain.ReasonDayBlocked, domain.UnavailableReasonOf(err))
	}
}

func TestResolver_SlotBlockRemovesOnlyThatTime(t *testing.T) {
	store := memstore.New()
	service := newService(t, store, 1)
	r := NewResolver(store, store, logger.Nop{})

	_, err := store.CreateSlotBlock(context.Background(), &domain.SlotBlock{
		ServiceID: service.ID, Date: friday, StartTime: "12:00", CreatedBy: 7,
	})
	require.NoError(t, err)

	day, err := r.AvailableSlots(context.Background(), service, friday)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "14:00"}, day.AvailableTimes())
	assert.True(t, day.Slots[1].Blocked)
	assert.Equal(t, 0, day.Slots[1].AvailableSpots)

	ok, reason, err := r.IsSlotAvailable(context.Background(), service, friday, "12:00")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.ReasonSlotBlocked, reason)
}

func TestResolver_CheckNotOffered(t *testing.T) {
	store := memstore.New()
	service := newService(t, store, 1)
	r := NewResolver(store, store, logger.Nop{})

	ok, reason, err := r.IsSlotAvailable(context.Background(), service, friday, "11:00")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.ReasonNotOffered, reason)
}

func TestResolver_RepositoryErrorWrapped(t *testing.T) {
	store := memstore.New()
	service := newService(t, store, 1)
	r := NewResolver(store, store, logger.Nop{})

	store.FailNext["IsDayBlocked"] = errors.New("connection reset")

	_, err := r.AvailableSlots(context.Background(), service, friday)
	assert.ErrorIs(t, err, ErrInternal)

	store.FailNext["IsDayBlocked"] = errors.New("connection reset")
	ok, _, err := r.IsSlotAvailable(context.Background(), service, friday, "10:00")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInternal)
}
