package recompute_total

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/reservations/models"
	recomputeTotal "github.com/m04kA/SMC-SpaBookingService/internal/usecase/recompute_total"
)

const (
	msgInvalidReservationID = "некорректный ID резервации"
	msgReservationNotFound  = "резервация не найдена"
)

// TotalResponse HTTP response model
type TotalResponse struct {
	ReservationID int64                     `json:"reservationId"`
	Total         string                    `json:"total"`
	Discounts     []models.DiscountResponse `json:"discounts"`
}

type Handler struct {
	useCase RecomputeTotalUseCase
	logger  Logger
}

func NewHandler(useCase RecomputeTotalUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/recompute
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &recomputeTotal.Request{ReservationID: reservationID})
	if err != nil {
		switch {
		case errors.Is(err, recomputeTotal.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, recomputeTotal.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("POST /reservations/{id}/recompute - Failed to recompute: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, TotalResponse{
		ReservationID: result.ReservationID,
		Total:         models.Money(result.Total),
		Discounts:     models.FromDomainDiscounts(result.Discounts),
	})
}
