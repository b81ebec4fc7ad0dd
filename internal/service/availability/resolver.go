package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Resolver вычисляет доступность слотов по шаблону услуги, занятости и блокировкам
// Результат не кэшируется: каждый вызов читает текущее состояние.
// Внутри транзакции репозитории используют её, поэтому проверка
// в момент записи видит те же строки, что и вставка
type Resolver struct {
	blocks    BlockRepository
	occupancy OccupancyRepository
	logger    Logger
}

// NewResolver создает новый экземпляр резолвера доступности
func NewResolver(blocks BlockRepository, occupancy OccupancyRepository, logger Logger) *Resolver {
	return &Resolver{
		blocks:    blocks,
		occupancy: occupancy,
		logger:    logger,
	}
}

// AvailableSlots возвращает все слоты шаблона на дату с деталями занятости
//
// 1. Блокировка дня -> пустой список, Blocked = true
// 2. Слоты шаблона на день недели (день не настроен -> пустой список)
// 3. Занятость каждого слота = количество активных строк
// 4. Слот доступен, если занятость < max_simultaneous и нет блокировки слота
func (r *Resolver) AvailableSlots(ctx context.Context, service *domain.Service, date time.Time) (*domain.DayAvailability, error) {
	date = domain.DateOnly(date)
	result := &domain.DayAvailability{
		ServiceID: service.ID,
		Date:      date,
		Slots:     []domain.AvailableSlot{},
	}

	// 1. Блокировка всего дня
	dayBlocked, err := r.blocks.IsDayBlocked(ctx, service.ID, date)
	if err != nil {
		r.logger.Error("AvailableSlots: failed to check day block for service=%d, date=%s: %v",
			service.ID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: check day block: %v", ErrInternal, err)
	}
	if dayBlocked {
		result.Blocked = true
		return result, nil
	}

	// 2. Кандидаты из недельного шаблона
	candidates := service.SlotsFor(date)
	if len(candidates) == 0 {
		return result, nil
	}

	// 3. Занятость и блокировки слотов одним запросом на дату
	counts, err := r.occupancy.CountActiveByTime(ctx, service.ID, date)
	if err != nil {
		r.logger.Error("AvailableSlots: failed to count occupancy for service=%d, date=%s: %v",
			service.ID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: count occupancy: %v", ErrInternal, err)
	}

	slotBlocks, err := r.blocks.ListActiveSlotBlocks(ctx, service.ID, date)
	if err != nil {
		r.logger.Error("AvailableSlots: failed to list slot blocks for service=%d, date=%s: %v",
			service.ID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: list slot blocks: %v", ErrInternal, err)
	}

	blocked := make(map[types.TimeString]bool, len(slotBlocks))
	for _, b := range slotBlocks {
		blocked[b.StartTime] = true
	}

	// 4. Детали по каждому слоту (шаблон уже отсортирован по времени)
	total := service.EffectiveMaxSimultaneous()
	for _, t := range candidates {
		occupancy := counts[t]
		slot := domain.AvailableSlot{
			StartTime:  t,
			Occupancy:  occupancy,
			TotalSpots: total,
			Blocked:    blocked[t],
		}
		if !slot.Blocked && occupancy < total {
			slot.AvailableSpots = total - occupancy
		}
		result.Slots = append(result.Slots, slot)
	}

	return result, nil
}

// Check проверяет один слот по тем же правилам, что и AvailableSlots
// Возвращает nil, если слот можно бронировать, иначе SlotUnavailableError с причиной
func (r *Resolver) Check(ctx context.Context, service *domain.Service, date time.Time, startTime types.TimeString) error {
	date = domain.DateOnly(date)

	dayBlocked, err := r.blocks.IsDayBlocked(ctx, service.ID, date)
	if err != nil {
		r.logger.Error("CheckSlot: failed to check day block for service=%d: %v", service.ID, err)
		return fmt.Errorf("%w: check day block: %v", ErrInternal, err)
	}
	if dayBlocked {
		return domain.NewSlotUnavailable(domain.ReasonDayBlocked)
	}

	if !service.OffersSlot(date, startTime) {
		return domain.NewSlotUnavailable(domain.ReasonNotOffered)
	}

	slotBlocked, err := r.blocks.IsSlotBlocked(ctx, service.ID, date, startTime)
	if err != nil {
		r.logger.Error("CheckSlot: failed to check slot block for service=%d: %v", service.ID, err)
		return fmt.Errorf("%w: check slot block: %v", ErrInternal, err)
	}
	if slotBlocked {
		return domain.NewSlotUnavailable(domain.ReasonSlotBlocked)
	}

	occupancy, err := r.occupancy.CountActiveAtSlot(ctx, service.ID, date, startTime)
	if err != nil {
		r.logger.Error("CheckSlot: failed to count occupancy for service=%d: %v", service.ID, err)
		return fmt.Errorf("%w: count occupancy: %v", ErrInternal, err)
	}
	if occupancy >= service.EffectiveMaxSimultaneous() {
		return domain.NewSlotUnavailable(domain.ReasonCapacityExhausted)
	}

	return nil
}

// IsSlotAvailable булева форма Check: (доступен, причина недоступности)
func (r *Resolver) IsSlotAvailable(
	ctx context.Context,
	service *domain.Service,
	date time.Time,
	startTime types.TimeString,
) (bool, domain.UnavailableReason, error) {
	err := r.Check(ctx, service, date, startTime)
	if err == nil {
		return true, domain.ReasonNone, nil
	}

	if reason := domain.UnavailableReasonOf(err); reason != domain.ReasonNone {
		return false, reason, nil
	}

	return false, domain.ReasonNone, err
}
