package register_payment

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/reservation"
)

// UseCase use case обработки платежных событий
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

// Execute применяет событие оплаты или отмены
//
// Итог пересчитывается до оценки перехода, чтобы пороги partial/paid
// сравнивались с актуальной суммой. paid и cancelled - конечные состояния.
// Отмена освобождает все активные строки услуг; итог сохраняется на момент отмены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RegisterPayment: reservation=%d, type=%s, amount=%s", req.ReservationID, req.Type, req.Amount.StringFixed(2))

	// 1. Валидация
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	switch req.Type {
	case EventPayment:
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
		}
	case EventCancel:
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, req.Type)
	}

	var response *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Блокируем резервацию
		reservation, err := uc.reservationRepo.GetByIDForUpdate(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("RegisterPayment: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if reservation.IsTerminal() {
			uc.logger.Warn("RegisterPayment: reservation id=%d is already %s", reservation.ID, reservation.PaymentState)
			return fmt.Errorf("%w: reservation is %s", ErrInvalidTransition, reservation.PaymentState)
		}

		// 3. Сначала актуальный итог
		if _, err := uc.totals.Recompute(txCtx, reservation); err != nil {
			return fmt.Errorf("%w: failed to recompute total: %v", ErrInternal, err)
		}

		// 4. Переход состояния
		var released int64
		if req.Type == EventCancel {
			if err := reservation.Cancel(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
			}
			released, err = uc.reservationRepo.CancelServiceLines(txCtx, reservation.ID)
			if err != nil {
				uc.logger.Error("RegisterPayment: failed to release lines of reservation=%d: %v", reservation.ID, err)
				return fmt.Errorf("%w: failed to release lines: %v", ErrInternal, err)
			}
		} else {
			if err := reservation.ApplyPayment(req.Amount); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
			}
		}

		if err := uc.reservationRepo.UpdateTotals(txCtx, reservation.ID, reservation.Total, reservation.AmountPaid, reservation.PaymentState); err != nil {
			uc.logger.Error("RegisterPayment: failed to save reservation=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to save reservation: %v", ErrInternal, err)
		}

		response = &Response{
			ReservationID: reservation.ID,
			Total:         reservation.Total,
			AmountPaid:    reservation.AmountPaid,
			PaymentState:  reservation.PaymentState,
			ReleasedLines: released,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RegisterPayment: reservation=%d is %s, paid %s of %s",
		response.ReservationID, response.PaymentState, response.AmountPaid.StringFixed(2), response.Total.StringFixed(2))

	return response, nil
}
