package add_product_line

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	reservationRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SpaBookingService/internal/integrations/inventory"
)

// maxQuantity верхняя граница количества в одной строке
const maxQuantity = 100

// UseCase use case добавления строки товара
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	inventory       InventoryClient
	totals          TotalsAggregator
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	inventory InventoryClient,
	totals TotalsAggregator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		inventory:       inventory,
		totals:          totals,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case
//
// Склад списывается внутри транзакции после вставки строки (ключ = id строки).
// Если транзакция затем откатывается, списание компенсируется возвратом с тем же ключом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AddProductLine: reservation=%d, product=%d, quantity=%d", req.ReservationID, req.ProductID, req.Quantity)

	// 1. Валидация
	if req.ReservationID <= 0 || req.ProductID <= 0 {
		return nil, fmt.Errorf("%w: reservationID and productID must be positive", ErrInvalidInput)
	}
	if req.Quantity <= 0 || req.Quantity > maxQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, maxQuantity)
	}

	var (
		response *Response
		consumed *domain.ProductLine
	)

	// 2. Транзакция: строка, списание, пересчет
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := uc.reservationRepo.GetByIDForUpdate(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("AddProductLine: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		if !reservation.IsOpen() {
			uc.logger.Warn("AddProductLine: reservation id=%d is %s", reservation.ID, reservation.PaymentState)
			return ErrReservationClosed
		}

		product, err := uc.catalogRepo.GetProductByID(txCtx, req.ProductID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrProductNotFound) {
				return ErrProductNotFound
			}
			uc.logger.Error("AddProductLine: failed to get product id=%d: %v", req.ProductID, err)
			return fmt.Errorf("%w: failed to get product: %v", ErrInternal, err)
		}
		if !product.Active {
			uc.logger.Warn("AddProductLine: product id=%d is inactive", product.ID)
			return ErrProductNotFound
		}

		line, err := uc.reservationRepo.CreateProductLine(txCtx, &domain.ProductLine{
			ReservationID:   reservation.ID,
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        req.Quantity,
			UnitPriceFrozen: product.Price,
		})
		if err != nil {
			uc.logger.Error("AddProductLine: failed to create line: %v", err)
			return fmt.Errorf("%w: failed to create line: %v", ErrInternal, err)
		}

		if err := uc.inventory.Consume(txCtx, product.ID, req.Quantity, inventory.LineKey(line.ID)); err != nil {
			switch {
			case errors.Is(err, inventory.ErrInsufficientStock):
				uc.logger.Warn("AddProductLine: product id=%d out of stock", product.ID)
				return ErrOutOfStock
			case errors.Is(err, inventory.ErrProductNotFound):
				uc.logger.Warn("AddProductLine: inventory does not know product id=%d", product.ID)
				return ErrProductNotFound
			}
			uc.logger.Error("AddProductLine: failed to consume stock: %v", err)
			return fmt.Errorf("%w: failed to consume stock: %v", ErrInternal, err)
		}
		consumed = line

		result, err := uc.totals.Recompute(txCtx, reservation)
		if err != nil {
			uc.logger.Error("AddProductLine: failed to recompute total of reservation=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to recompute total: %v", ErrInternal, err)
		}

		response = &Response{Line: line, Total: result.Total, Discounts: result.Discounts}
		return nil
	})

	if err != nil {
		// 3. Компенсация списания при откате
		if consumed != nil {
			if restoreErr := uc.inventory.Restore(ctx, consumed.ProductID, consumed.Quantity, inventory.LineKey(consumed.ID)); restoreErr != nil {
				uc.logger.Error("AddProductLine: failed to restore stock for product=%d key=%s: %v",
					consumed.ProductID, inventory.LineKey(consumed.ID), restoreErr)
			}
		}
		return nil, err
	}

	uc.logger.Info("AddProductLine: created line id=%d, reservation=%d total=%s",
		response.Line.ID, req.ReservationID, response.Total.StringFixed(2))

	return response, nil
}
