package register_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	registerPayment "github.com/m04kA/SMC-SpaBookingService/internal/usecase/register_payment"
)

const (
	msgInvalidReservationID = "некорректный ID резервации"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidEvent         = "некорректное платежное событие"
	msgReservationNotFound  = "резервация не найдена"
	msgInvalidTransition    = "резервация уже оплачена или отменена"
)

type Handler struct {
	useCase RegisterPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RegisterPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req PaymentEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID))
	if err != nil {
		switch {
		case errors.Is(err, registerPayment.ErrInvalidTransition):
			h.logger.Warn("POST /reservations/{id}/payments - Invalid transition: reservation_id=%d, type=%s", reservationID, req.Type)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, registerPayment.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, registerPayment.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/payments - Invalid event: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEvent)

		default:
			h.logger.Error("POST /reservations/{id}/payments - Failed to register event: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/payments - Event registered: reservation_id=%d, type=%s, state=%s",
		reservationID, req.Type, result.PaymentState)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
