package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

// fakeRedis хранит значения в памяти, возвращая настоящие команды go-redis
type fakeRedis struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	value, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

type countingSource struct {
	calls   int
	service *domain.Service
	err     error
}

func (s *countingSource) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	copied := *s.service
	copied.ID = id
	return &copied, nil
}

func massage(t *testing.T) *domain.Service {
	t.Helper()
	slots, err := domain.ParseWeeklySlots(map[string][]string{"viernes": {"12:00", "10:00"}})
	require.NoError(t, err)
	kind := domain.KindMassage
	return &domain.Service{
		Name:            "Masaje relajante",
		DurationMinutes: 60,
		PriceBase:       decimal.RequireFromString("45000.50"),
		CapacityMin:     1,
		CapacityMax:     2,
		MaxSimultaneous: 2,
		WeeklySlots:     slots,
		Kind:            &kind,
	}
}

func TestCache_ReadThrough(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	source := &countingSource{service: massage(t)}
	cache := NewCache(source, rdb, time.Minute, logger.Nop{})

	first, err := cache.GetServiceByID(ctx, 7)
	require.NoError(t, err)
	second, err := cache.GetServiceByID(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls)
	assert.Equal(t, time.Minute, rdb.ttls[serviceKey(7)])
	assert.Equal(t, first.Name, second.Name)
	assert.True(t, second.PriceBase.Equal(first.PriceBase))
	assert.Equal(t, first.WeeklySlots.For(time.Friday), second.WeeklySlots.For(time.Friday))
	require.NotNil(t, second.Kind)
	assert.Equal(t, domain.KindMassage, *second.Kind)

	// Истечение TTL
	delete(rdb.data, serviceKey(7))
	_, err = cache.GetServiceByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestCache_RedisFailureFallsBack(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failGet = errors.New("connection refused")
	source := &countingSource{service: massage(t)}
	cache := NewCache(source, rdb, time.Minute, logger.Nop{})

	service, err := cache.GetServiceByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), service.ID)
	assert.Equal(t, 1, source.calls)
}

func TestCache_CorruptedEntryReloads(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data[serviceKey(3)] = "{not json"
	source := &countingSource{service: massage(t)}
	cache := NewCache(source, rdb, time.Minute, logger.Nop{})

	_, err := cache.GetServiceByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
}

func TestCache_SourceErrorNotCached(t *testing.T) {
	rdb := newFakeRedis()
	notFound := errors.New("not found")
	cache := NewCache(&countingSource{err: notFound}, rdb, time.Minute, logger.Nop{})

	_, err := cache.GetServiceByID(context.Background(), 9)
	assert.ErrorIs(t, err, notFound)
	assert.Empty(t, rdb.data)
}
