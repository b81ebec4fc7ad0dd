package blocks

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
)

var friday = time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Service, *memstore.Store, *domain.Service) {
	t.Helper()

	store := memstore.New()
	slots, err := domain.ParseWeeklySlots(map[string][]string{"friday": {"10:00", "12:00"}})
	require.NoError(t, err)

	service := store.AddService(domain.Service{Name: "Tina", MaxSimultaneous: 1, WeeklySlots: slots})
	return NewService(store, store, logger.Nop{}), store, service
}

func TestService_CreateSlotBlockRejectsTimeOutsideTemplate(t *testing.T) {
	svc, _, service := setup(t)

	_, err := svc.CreateSlotBlock(context.Background(), &CreateSlotBlockRequest{
		ServiceID: service.ID, Date: friday, StartTime: "11:00", ActorID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)

	// Время есть в шаблоне, но на другой день недели
	_, err = svc.CreateSlotBlock(context.Background(), &CreateSlotBlockRequest{
		ServiceID: service.ID, Date: friday.AddDate(0, 0, 1), StartTime: "10:00", ActorID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)
}

func TestService_SlotBlockLifecycle(t *testing.T) {
	svc, _, service := setup(t)
	ctx := context.Background()

	block, err := svc.CreateSlotBlock(ctx, &CreateSlotBlockRequest{
		ServiceID: service.ID, Date: friday, StartTime: "12:00", ActorID: 5,
	})
	require.NoError(t, err)
	assert.True(t, block.Active)
	assert.Equal(t, int64(5), block.CreatedBy)

	blocked, err := svc.SlotBlocked(ctx, service.ID, friday, "12:00")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = svc.SlotBlocked(ctx, service.ID, friday, "10:00")
	require.NoError(t, err)
	assert.False(t, blocked)

	list, err := svc.ListSlotBlocks(ctx, service.ID, friday)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteSlotBlock(ctx, service.ID, friday, "12:00", 5))
	assert.ErrorIs(t, svc.DeleteSlotBlock(ctx, service.ID, friday, "12:00", 5), ErrBlockNotFound)

	blocked, err = svc.SlotBlocked(ctx, service.ID, friday, "12:00")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestService_DayBlockIdempotent(t *testing.T) {
	svc, _, service := setup(t)
	ctx := context.Background()

	first, err := svc.CreateDayBlock(ctx, &CreateDayBlockRequest{
		ServiceID: service.ID, Date: friday, Reason: ptr.Ptr("mantención"), ActorID: 2,
	})
	require.NoError(t, err)

	second, err := svc.CreateDayBlock(ctx, &CreateDayBlockRequest{
		ServiceID: service.ID, Date: friday, Reason: ptr.Ptr("  limpieza  "), ActorID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "limpieza", ptr.Value(second.Reason))

	blocked, err := svc.ServiceBlockedOn(ctx, service.ID, friday)
	require.NoError(t, err)
	assert.True(t, blocked)

	require.NoError(t, svc.DeleteDayBlock(ctx, service.ID, friday, 2))
	assert.ErrorIs(t, svc.DeleteDayBlock(ctx, service.ID, friday, 2), ErrBlockNotFound)

	block, err := svc.DayBlock(ctx, service.ID, friday)
	require.NoError(t, err)
	assert.Nil(t, block)
}

func TestService_Validation(t *testing.T) {
	svc, _, service := setup(t)
	ctx := context.Background()

	_, err := svc.CreateDayBlock(ctx, &CreateDayBlockRequest{ServiceID: service.ID, Date: friday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateDayBlock(ctx, &CreateDayBlockRequest{
		ServiceID: service.ID, Date: friday, ActorID: 1, Reason: ptr.Ptr(strings.Repeat("x", 300)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateDayBlock(ctx, &CreateDayBlockRequest{ServiceID: 999, Date: friday, ActorID: 1})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.CreateSlotBlock(ctx, &CreateSlotBlockRequest{
		ServiceID: service.ID, Date: friday, StartTime: "25:00", ActorID: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
