package recompute_total

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/reservation"
)

// UseCase use case явного пересчета итога резервации
type UseCase struct {
	reservationRepo ReservationRepository
	totals          TotalsAggregator
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, totals TotalsAggregator, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		totals:          totals,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute пересчитывает итог; повторный вызов без изменений строк дает тот же итог и те же скидки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	var response *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := uc.reservationRepo.GetByIDForUpdate(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("RecomputeTotal: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("RecomputeTotal: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		result, err := uc.totals.Recompute(txCtx, reservation)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		response = &Response{ReservationID: reservation.ID, Total: result.Total, Discounts: result.Discounts}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}
