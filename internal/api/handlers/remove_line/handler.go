package remove_line

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	removeLine "github.com/m04kA/SMC-SpaBookingService/internal/usecase/remove_line"
)

const (
	msgInvalidID           = "некорректный ID резервации или строки"
	msgReservationNotFound = "резервация не найдена"
	msgLineNotFound        = "строка не найдена"
	msgReservationClosed   = "резервация оплачена или отменена"
)

type Handler struct {
	useCase RemoveLineUseCase
	logger  Logger
}

func NewHandler(useCase RemoveLineUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleService DELETE /api/v1/reservations/{reservationId}/service-lines/{lineId}
func (h *Handler) HandleService(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, removeLine.LineService)
}

// HandleProduct DELETE /api/v1/reservations/{reservationId}/product-lines/{lineId}
func (h *Handler) HandleProduct(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, removeLine.LineProduct)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, kind removeLine.LineKind) {
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

	result, err := h.useCase.Execute(r.Context(), &removeLine.Request{
		ReservationID: reservationID,
		LineID:        lineID,
		Kind:          kind,
	})
	if err != nil {
		switch {
		case errors.Is(err, removeLine.ErrReservationClosed):
			handlers.RespondError(w, http.StatusConflict, msgReservationClosed)

		case errors.Is(err, removeLine.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, removeLine.ErrLineNotFound):
			h.logger.Warn("DELETE /reservations/{id}/%s-lines/{lineId} - Line not found: reservation_id=%d, line_id=%d",
				kind, reservationID, lineID)
			handlers.RespondNotFound(w, msgLineNotFound)

		case errors.Is(err, removeLine.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidID)

		default:
			h.logger.Error("DELETE /reservations/{id}/%s-lines/{lineId} - Failed to remove line: reservation_id=%d, line_id=%d, error=%v",
				kind, reservationID, lineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id}/%s-lines/{lineId} - Line removed: reservation_id=%d, line_id=%d, total=%s",
		kind, reservationID, lineID, result.Total.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
