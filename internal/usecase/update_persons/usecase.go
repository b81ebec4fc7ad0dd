package update_persons

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/reservation"
)

// UseCase use case изменения количества персон в строке услуги
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	totals          TotalsAggregator
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	totals TotalsAggregator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		totals:          totals,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case
// Занятость слота считается по бронированиям, а не по персонам, поэтому доступность не перепроверяется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdatePersons: reservation=%d, line=%d, persons=%d", req.ReservationID, req.LineID, req.Persons)

	// 1. Валидация
	if req.ReservationID <= 0 || req.LineID <= 0 {
		return nil, fmt.Errorf("%w: reservationID and lineID must be positive", ErrInvalidInput)
	}
	if req.Persons <= 0 || req.Persons > domain.MaxPersonsPerLine {
		return nil, fmt.Errorf("%w: persons must be between 1 and %d", ErrInvalidInput, domain.MaxPersonsPerLine)
	}

	var response *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Блокируем резервацию
		reservation, err := uc.reservationRepo.GetByIDForUpdate(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdatePersons: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		if !reservation.IsOpen() {
			return ErrReservationClosed
		}

		// 3. Строка должна принадлежать резервации и быть активной
		line, err := uc.reservationRepo.GetServiceLine(txCtx, req.LineID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrLineNotFound) {
				return ErrLineNotFound
			}
			uc.logger.Error("UpdatePersons: failed to get line id=%d: %v", req.LineID, err)
			return fmt.Errorf("%w: failed to get line: %v", ErrInternal, err)
		}
		if line.ReservationID != reservation.ID || !line.IsActive() {
			uc.logger.Warn("UpdatePersons: line id=%d does not belong to reservation id=%d", line.ID, reservation.ID)
			return ErrLineNotFound
		}

		// 4. Только границы вместимости услуги
		service, err := uc.catalogRepo.GetServiceByID(txCtx, line.ServiceID)
		if err != nil {
			uc.logger.Error("UpdatePersons: failed to get service id=%d: %v", line.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !service.AcceptsPersons(req.Persons) {
			uc.logger.Warn("UpdatePersons: persons=%d outside %d..%d of service id=%d",
				req.Persons, service.CapacityMin, service.CapacityMax, service.ID)
			return fmt.Errorf("%w: persons=%d, service %q accepts %d..%d",
				domain.ErrCapacity, req.Persons, service.Name, service.CapacityMin, service.CapacityMax)
		}

		if err := uc.reservationRepo.UpdateLinePersons(txCtx, line.ID, req.Persons); err != nil {
			uc.logger.Error("UpdatePersons: failed to update line id=%d: %v", line.ID, err)
			return fmt.Errorf("%w: failed to update line: %v", ErrInternal, err)
		}
		line.Persons = req.Persons

		// 5. Пересчет итога в той же транзакции
		result, err := uc.totals.Recompute(txCtx, reservation)
		if err != nil {
			return fmt.Errorf("%w: failed to recompute total: %v", ErrInternal, err)
		}

		response = &Response{Line: line, Total: result.Total, Discounts: result.Discounts}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdatePersons: line id=%d now has %d persons, reservation total=%s",
		req.LineID, req.Persons, response.Total.StringFixed(2))

	return response, nil
}
