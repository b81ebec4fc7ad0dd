package add_service_line

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	reservationRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/reservation"
)

// UseCase use case для добавления строки услуги в резервацию
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	availability    AvailabilityChecker
	totals          TotalsAggregator
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	availability AvailabilityChecker,
	totals TotalsAggregator,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		availability:    availability,
		totals:          totals,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case добавления строки услуги
//
// Доступность проверяется повторно внутри той же транзакции, что и вставка:
// строки резервации и услуги блокируются (FOR UPDATE), поэтому две конкурентные
// вставки в один слот выполняются по очереди и вторая видит занятость первой.
// Частичный уникальный индекс по номеру места отклоняет вставку сверх max_simultaneous,
// даже если блокировка услуги была обойдена
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AddServiceLine: reservation=%d, service=%d, date=%s, time=%s, persons=%d",
		req.ReservationID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.Persons)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AddServiceLine: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	date := domain.DateOnly(req.Date)
	if domain.IsDateInPast(date, uc.timeProvider.Now()) {
		uc.logger.Warn("AddServiceLine: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	var (
		response *Response
		kind     domain.ServiceKind
	)

	// 3. Проверка и вставка в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем резервацию
		reservation, err := uc.reservationRepo.GetByIDForUpdate(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("AddServiceLine: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("AddServiceLine: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if !reservation.IsOpen() {
			uc.logger.Warn("AddServiceLine: reservation id=%d is %s", reservation.ID, reservation.PaymentState)
			return ErrReservationClosed
		}

		// 3.2. Блокируем услугу: сериализует все вставки строк этой услуги
		service, err := uc.catalogRepo.GetServiceForUpdate(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("AddServiceLine: service id=%d not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("AddServiceLine: failed to get service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		// 3.3. Количество персон в границах услуги
		if err := validateCapacity(service, req.Persons); err != nil {
			uc.logger.Warn("AddServiceLine: %v", err)
			return err
		}

		// 3.4. Повторная проверка доступности в момент записи
		if err := uc.availability.Check(txCtx, service, date, req.StartTime); err != nil {
			if errors.Is(err, domain.ErrSlotUnavailable) {
				reason := domain.UnavailableReasonOf(err)
				uc.metrics.RecordSlotConflict(string(reason))
				uc.logger.Warn("AddServiceLine: slot service=%d %s %s unavailable: %s",
					service.ID, date.Format(domain.DateFormat), req.StartTime, reason)
				return err
			}
			uc.logger.Error("AddServiceLine: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}

		// 3.5. Наименьший свободный номер места
		taken, err := uc.reservationRepo.ActiveSlotOrdinals(txCtx, service.ID, date, req.StartTime)
		if err != nil {
			uc.logger.Error("AddServiceLine: failed to get slot ordinals: %v", err)
			return fmt.Errorf("%w: failed to get slot ordinals: %v", ErrInternal, err)
		}

		ordinal, ok := freeOrdinal(taken, service.EffectiveMaxSimultaneous())
		if !ok {
			uc.metrics.RecordSlotConflict(string(domain.ReasonCapacityExhausted))
			uc.logger.Warn("AddServiceLine: no free ordinal for service=%d at %s %s",
				service.ID, date.Format(domain.DateFormat), req.StartTime)
			return domain.NewSlotUnavailable(domain.ReasonCapacityExhausted)
		}

		// 3.6. Создаем строку, цена копируется из каталога один раз
		line, err := uc.reservationRepo.CreateServiceLine(txCtx, &domain.ReservationLine{
			ReservationID:   reservation.ID,
			ServiceID:       service.ID,
			ServiceName:     service.Name,
			ServiceKind:     service.Kind,
			Date:            date,
			StartTime:       req.StartTime,
			Persons:         req.Persons,
			UnitPriceFrozen: service.PriceBase,
			SlotOrdinal:     ordinal,
			Status:          domain.LineActive,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				uc.metrics.RecordSlotConflict("ordinal_taken")
				uc.logger.Warn("AddServiceLine: ordinal %d already taken for service=%d", ordinal, service.ID)
				return domain.NewSlotUnavailable(domain.ReasonCapacityExhausted)
			}
			uc.logger.Error("AddServiceLine: failed to create line: %v", err)
			return fmt.Errorf("%w: failed to create line: %v", ErrInternal, err)
		}

		// 3.7. Пересчет итога в той же транзакции
		result, err := uc.totals.Recompute(txCtx, reservation)
		if err != nil {
			uc.logger.Error("AddServiceLine: failed to recompute total of reservation=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to recompute total: %v", ErrInternal, err)
		}

		kind = domain.ResolveKind(service.Kind, service.Name)
		response = &Response{
			Line:      line,
			Total:     result.Total,
			Discounts: result.Discounts,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.RecordLineCreated(string(kind))
	uc.logger.Info("AddServiceLine: created line id=%d (ordinal %d), reservation=%d total=%s",
		response.Line.ID, response.Line.SlotOrdinal, req.ReservationID, response.Total.StringFixed(2))

	return response, nil
}
