package add_product_line

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	addProductLine "github.com/m04kA/SMC-SpaBookingService/internal/usecase/add_product_line"
)

const (
	msgInvalidReservationID = "некорректный ID резервации"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные параметры товара"
	msgReservationNotFound  = "резервация не найдена"
	msgProductNotFound      = "товар не найден"
	msgOutOfStock           = "товара нет в наличии"
	msgReservationClosed    = "резервация оплачена или отменена"
)

type Handler struct {
	useCase AddProductLineUseCase
	logger  Logger
}

func NewHandler(useCase AddProductLineUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/product-lines
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/product-lines - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req AddProductLineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/product-lines - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &addProductLine.Request{
		ReservationID: reservationID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, addProductLine.ErrOutOfStock):
			h.logger.Warn("POST /reservations/{id}/product-lines - Out of stock: product_id=%d, quantity=%d", req.ProductID, req.Quantity)
			handlers.RespondError(w, http.StatusConflict, msgOutOfStock)

		case errors.Is(err, addProductLine.ErrReservationClosed):
			handlers.RespondError(w, http.StatusConflict, msgReservationClosed)

		case errors.Is(err, addProductLine.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, addProductLine.ErrProductNotFound):
			h.logger.Warn("POST /reservations/{id}/product-lines - Product not found: product_id=%d", req.ProductID)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, addProductLine.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations/{id}/product-lines - Failed to add product: reservation_id=%d, product_id=%d, error=%v",
				reservationID, req.ProductID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/product-lines - Line created: reservation_id=%d, line_id=%d",
		reservationID, result.Line.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
