package block_cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func date(s string) time.Time {
	d, _ := time.Parse(domain.DateFormat, s)
	return d
}

func TestJob_Run(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	_, err := store.CreateDayBlock(ctx, &domain.DayBlock{ServiceID: 1, Date: date("2025-01-01"), CreatedBy: 5})
	require.NoError(t, err)
	_, err = store.CreateSlotBlock(ctx, &domain.SlotBlock{ServiceID: 1, Date: date("2025-01-02"), StartTime: types.MustTimeString("10:00"), Active: true, CreatedBy: 5})
	require.NoError(t, err)
	_, err = store.CreateDayBlock(ctx, &domain.DayBlock{ServiceID: 1, Date: date("2025-01-20"), CreatedBy: 5})
	require.NoError(t, err)

	job := NewJob(store, 10, logger.Nop{})
	job.timeProvider = fixedTime{t: time.Date(2025, 1, 25, 14, 30, 0, 0, time.UTC)}

	deleted, err := job.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	blocked, err := store.IsDayBlocked(ctx, 1, date("2025-01-20"))
	require.NoError(t, err)
	assert.True(t, blocked, "block inside retention window survives")

	deleted, err = job.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestJob_RunError(t *testing.T) {
	store := memstore.New()
	boom := errors.New("connection reset")
	store.FailNext["DeleteOlderThan"] = boom

	job := NewJob(store, 10, logger.Nop{})
	_, err := job.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestJob_Schedule(t *testing.T) {
	job := NewJob(memstore.New(), 30, logger.Nop{})
	c := cron.New()

	id, err := job.Schedule(c, "0 3 * * *")
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Len(t, c.Entries(), 1)

	_, err = job.Schedule(c, "not a spec")
	assert.Error(t, err)
}
