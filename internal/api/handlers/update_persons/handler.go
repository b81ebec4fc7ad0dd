package update_persons

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	updatePersons "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_persons"
)

const (
	msgInvalidID           = "некорректный ID резервации или строки"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректное количество персон"
	msgCapacity            = "количество персон вне допустимого диапазона услуги"
	msgReservationNotFound = "резервация не найдена"
	msgLineNotFound        = "строка не найдена"
	msgReservationClosed   = "резервация оплачена или отменена"
)

type Handler struct {
	useCase UpdatePersonsUseCase
	logger  Logger
}

func NewHandler(useCase UpdatePersonsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/service-lines/{lineId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	lineID, err := handlers.PathID(r, "lineId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdatePersonsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/service-lines/{lineId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updatePersons.Request{
		ReservationID: reservationID,
		LineID:        lineID,
		Persons:       req.Persons,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCapacity):
			h.logger.Warn("PATCH /reservations/{id}/service-lines/{lineId} - Capacity violated: %v", err)
			handlers.RespondUnprocessable(w, msgCapacity)

		case errors.Is(err, updatePersons.ErrReservationClosed):
			handlers.RespondError(w, http.StatusConflict, msgReservationClosed)

		case errors.Is(err, updatePersons.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, updatePersons.ErrLineNotFound):
			handlers.RespondNotFound(w, msgLineNotFound)

		case errors.Is(err, updatePersons.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id}/service-lines/{lineId} - Failed to update persons: reservation_id=%d, line_id=%d, error=%v",
				reservationID, lineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/service-lines/{lineId} - Persons updated: line_id=%d, persons=%d", lineID, req.Persons)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
