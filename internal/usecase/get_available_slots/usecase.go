package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// UseCase use case для получения доступных слотов услуги на дату
type UseCase struct {
	catalog      CatalogReader
	resolver     AvailabilityResolver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog CatalogReader, resolver AvailabilityResolver, logger Logger) *UseCase {
	return &UseCase{
		catalog:      catalog,
		resolver:     resolver,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Получаем услугу
	service, err := uc.catalog.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	response := &Response{
		ServiceID:       service.ID,
		Date:            date,
		DurationMinutes: service.DurationMinutes,
		Slots:           []types.TimeString{},
		Details:         []Slot{},
	}

	// 3. Прошедшая дата: бронировать нечего
	if domain.IsDateInPast(date, uc.timeProvider.Now()) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return response, nil
	}

	// 4. Доступность считается заново при каждом вызове
	day, err := uc.resolver.AvailableSlots(ctx, service, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve slots: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve slots: %v", ErrInternal, err)
	}

	response.Blocked = day.Blocked
	response.Slots = day.AvailableTimes()
	for i := range day.Slots {
		s := &day.Slots[i]
		response.Details = append(response.Details, Slot{
			StartTime:      s.StartTime,
			AvailableSpots: s.AvailableSpots,
			TotalSpots:     s.TotalSpots,
			Occupancy:      s.Occupancy,
			Blocked:        s.Blocked,
			Available:      s.IsAvailable(),
			Reason:         s.Reason(),
			OccupancyRate:  s.OccupancyRate(),
		})
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for service=%d, date=%s (blocked=%t)",
		len(response.Slots), len(response.Details), service.ID, date.Format(domain.DateFormat), day.Blocked)

	return response, nil
}
