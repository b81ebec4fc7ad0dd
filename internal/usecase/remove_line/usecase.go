package remove_line

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SpaBookingService/internal/integrations/inventory"
)

// UseCase use case удаления строки резервации
type UseCase struct {
	reservationRepo ReservationRepository
	inventory       InventoryClient
	totals          TotalsAggregator
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	inventory InventoryClient,
	totals TotalsAggregator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		inventory:       inventory,
		totals:          totals,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute удаляет строку и пересчитывает итог
// Удаленная строка товара возвращается на склад после фиксации транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RemoveLine: reservation=%d, %s line=%d", req.ReservationID, req.Kind, req.LineID)

	// 1. Валидация
	if req.ReservationID <= 0 || req.LineID <= 0 {
		return nil, fmt.Errorf("%w: reservationID and lineID must be positive", ErrInvalidInput)
	}
	if req.Kind != LineService && req.Kind != LineProduct {
		return nil, fmt.Errorf("%w: unknown line kind %q", ErrInvalidInput, req.Kind)
	}

	var (
		response *Response
		removed  *domain.ProductLine
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Блокируем резервацию
		reservation, err := uc.reservationRepo.GetByIDForUpdate(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("RemoveLine: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		if !reservation.IsOpen() {
			return ErrReservationClosed
		}

		// 3. Удаление строки
		if req.Kind == LineService {
			err = uc.removeServiceLine(txCtx, reservation.ID, req.LineID)
		} else {
			removed, err = uc.removeProductLine(txCtx, reservation.ID, req.LineID)
		}
		if err != nil {
			return err
		}

		// 4. Пересчет итога: удаленная строка уходит и из подобранных пакетов
		result, err := uc.totals.Recompute(txCtx, reservation)
		if err != nil {
			return fmt.Errorf("%w: failed to recompute total: %v", ErrInternal, err)
		}

		response = &Response{Total: result.Total, Discounts: result.Discounts}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. Возврат товара на склад; повтор с тем же ключом безопасен
	if removed != nil {
		key := inventory.LineKey(removed.ID)
		if err := uc.inventory.Restore(ctx, removed.ProductID, removed.Quantity, key); err != nil {
			uc.logger.Error("RemoveLine: failed to restore stock product=%d quantity=%d key=%s: %v",
				removed.ProductID, removed.Quantity, key, err)
		}
	}

	uc.logger.Info("RemoveLine: removed %s line=%d, reservation=%d total=%s",
		req.Kind, req.LineID, req.ReservationID, response.Total.StringFixed(2))

	return response, nil
}

func (uc *UseCase) removeServiceLine(ctx context.Context, reservationID, lineID int64) error {
	line, err := uc.reservationRepo.GetServiceLine(ctx, lineID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrLineNotFound) {
			return ErrLineNotFound
		}
		return fmt.Errorf("%w: failed to get line: %v", ErrInternal, err)
	}
	if line.ReservationID != reservationID {
		return ErrLineNotFound
	}

	if err := uc.reservationRepo.DeleteServiceLine(ctx, lineID); err != nil {
		if errors.Is(err, reservationRepo.ErrLineNotFound) {
			return ErrLineNotFound
		}
		uc.logger.Error("RemoveLine: failed to delete service line id=%d: %v", lineID, err)
		return fmt.Errorf("%w: failed to delete line: %v", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) removeProductLine(ctx context.Context, reservationID, lineID int64) (*domain.ProductLine, error) {
	line, err := uc.reservationRepo.GetProductLine(ctx, lineID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrLineNotFound) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("%w: failed to get line: %v", ErrInternal, err)
	}
	if line.ReservationID != reservationID {
		return nil, ErrLineNotFound
	}

	if err := uc.reservationRepo.DeleteProductLine(ctx, lineID); err != nil {
		if errors.Is(err, reservationRepo.ErrLineNotFound) {
			return nil, ErrLineNotFound
		}
		uc.logger.Error("RemoveLine: failed to delete product line id=%d: %v", lineID, err)
		return nil, fmt.Errorf("%w: failed to delete line: %v", ErrInternal, err)
	}
	return line, nil
}
