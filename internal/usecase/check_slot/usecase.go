package check_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
)

// UseCase use case проверки доступности одного слота
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

// Execute выполняет проверку слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	date := domain.DateOnly(req.Date)

	// 2. Услуга
	service, err := uc.catalog.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CheckSlot: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckSlot: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Прошедшую дату не бронируют
	if domain.IsDateInPast(date, uc.timeProvider.Now()) {
		return &Response{Available: false, Reason: domain.ReasonPastDate}, nil
	}

	// 4. Тот же набор правил, что и при записи
	available, reason, err := uc.resolver.IsSlotAvailable(ctx, service, date, req.StartTime)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to check slot: %v", err)
		return nil, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}

	return &Response{Available: available, Reason: reason}, nil
}
