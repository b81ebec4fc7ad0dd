package add_service_line

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	addServiceLine "github.com/m04kA/SMC-SpaBookingService/internal/usecase/add_service_line"
)

const (
	msgInvalidReservationID = "некорректный ID резервации"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput         = "некорректные параметры строки"
	msgPastDate             = "нельзя бронировать прошедшую дату"
	msgSlotUnavailable      = "выбранный слот недоступен"
	msgCapacity             = "количество персон вне допустимого диапазона услуги"
	msgReservationNotFound  = "резервация не найдена"
	msgServiceNotFound      = "услуга не найдена"
	msgReservationClosed    = "резервация оплачена или отменена"
)

type Handler struct {
	useCase AddServiceLineUseCase
	logger  Logger
}

func NewHandler(useCase AddServiceLineUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/service-lines
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/service-lines - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req AddServiceLineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/service-lines - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/service-lines - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotUnavailable):
			reason := domain.UnavailableReasonOf(err)
			h.logger.Warn("POST /reservations/{id}/service-lines - Slot unavailable: reservation_id=%d, service_id=%d, reason=%s",
				reservationID, req.ServiceID, reason)
			handlers.RespondConflictWithReason(w, msgSlotUnavailable, string(reason))

		case errors.Is(err, domain.ErrCapacity):
			h.logger.Warn("POST /reservations/{id}/service-lines - Capacity violated: %v", err)
			handlers.RespondUnprocessable(w, msgCapacity)

		case errors.Is(err, addServiceLine.ErrReservationClosed):
			h.logger.Warn("POST /reservations/{id}/service-lines - Reservation closed: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgReservationClosed)

		case errors.Is(err, addServiceLine.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, addServiceLine.ErrServiceNotFound):
			h.logger.Warn("POST /reservations/{id}/service-lines - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, addServiceLine.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, addServiceLine.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/service-lines - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations/{id}/service-lines - Failed to add line: reservation_id=%d, service_id=%d, error=%v",
				reservationID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/service-lines - Line created: reservation_id=%d, line_id=%d, total=%s",
		reservationID, result.Line.ID, result.Total.StringFixed(2))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
