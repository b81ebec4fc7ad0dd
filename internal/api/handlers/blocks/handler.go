package blocks

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	blocksService "github.com/m04kA/SMC-SpaBookingService/internal/service/blocks"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные параметры блокировки"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgBlockNotFound      = "блокировка не найдена"
	msgSlotNotInTemplate  = "время отсутствует в расписании услуги на этот день недели"
)

// Handler управление блокировками дней и слотов (только персонал)
type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateDayBlock POST /api/v1/services/{serviceId}/day-blocks
func (h *Handler) CreateDayBlock(w http.ResponseWriter, r *http.Request) {
	serviceID, actorID, ok := h.target(w, r)
	if !ok {
		return
	}

	var req CreateDayBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	date, err := handlers.ParseDate(req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	block, err := h.service.CreateDayBlock(r.Context(), &blocksService.CreateDayBlockRequest{
		ServiceID: serviceID,
		Date:      date,
		Reason:    req.Reason,
		ActorID:   actorID,
	})
	if err != nil {
		h.respondError(w, "POST /services/{id}/day-blocks", err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, FromDomainDayBlock(block))
}

// DeleteDayBlock DELETE /api/v1/services/{serviceId}/day-blocks/{date}
func (h *Handler) DeleteDayBlock(w http.ResponseWriter, r *http.Request) {
	serviceID, actorID, ok := h.target(w, r)
	if !ok {
		return
	}

	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.DeleteDayBlock(r.Context(), serviceID, date, actorID); err != nil {
		h.respondError(w, "DELETE /services/{id}/day-blocks/{date}", err)
		return
	}

	handlers.RespondNoContent(w)
}

// CreateSlotBlock POST /api/v1/services/{serviceId}/slot-blocks
func (h *Handler) CreateSlotBlock(w http.ResponseWriter, r *http.Request) {
	serviceID, actorID, ok := h.target(w, r)
	if !ok {
		return
	}

	var req CreateSlotBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	date, err := handlers.ParseDate(req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	block, err := h.service.CreateSlotBlock(r.Context(), &blocksService.CreateSlotBlockRequest{
		ServiceID: serviceID,
		Date:      date,
		StartTime: startTime,
		ActorID:   actorID,
	})
	if err != nil {
		h.respondError(w, "POST /services/{id}/slot-blocks", err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, FromDomainSlotBlock(block))
}

// DeleteSlotBlock DELETE /api/v1/services/{serviceId}/slot-blocks/{date}/{time}
func (h *Handler) DeleteSlotBlock(w http.ResponseWriter, r *http.Request) {
	serviceID, actorID, ok := h.target(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	date, err := handlers.ParseDate(vars["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	startTime, err := types.NewTimeStringFromString(vars["time"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	if err := h.service.DeleteSlotBlock(r.Context(), serviceID, date, startTime, actorID); err != nil {
		h.respondError(w, "DELETE /services/{id}/slot-blocks/{date}/{time}", err)
		return
	}

	handlers.RespondNoContent(w)
}

// ListBlocks GET /api/v1/services/{serviceId}/blocks?date=
func (h *Handler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	serviceID, _, ok := h.target(w, r)
	if !ok {
		return
	}

	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	dayBlock, err := h.service.DayBlock(r.Context(), serviceID, date)
	if err != nil {
		h.respondError(w, "GET /services/{id}/blocks", err)
		return
	}
	slotBlocks, err := h.service.ListSlotBlocks(r.Context(), serviceID, date)
	if err != nil {
		h.respondError(w, "GET /services/{id}/blocks", err)
		return
	}

	resp := BlocksResponse{
		ServiceID:  serviceID,
		Date:       date.Format(domain.DateFormat),
		DayBlock:   FromDomainDayBlock(dayBlock),
		SlotBlocks: make([]SlotBlockResponse, 0, len(slotBlocks)),
	}
	for _, b := range slotBlocks {
		resp.SlotBlocks = append(resp.SlotBlocks, FromDomainSlotBlock(b))
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// target ID услуги из пути и сотрудник из контекста
func (h *Handler) target(w http.ResponseWriter, r *http.Request) (serviceID, actorID int64, ok bool) {
	serviceID, err := handlers.PathID(r, "serviceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return 0, 0, false
	}

	actorID, ok = middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, 0, false
	}

	return serviceID, actorID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSlot):
		h.logger.Warn("%s - Slot not in template: %v", route, err)
		handlers.RespondUnprocessable(w, msgSlotNotInTemplate)

	case errors.Is(err, blocksService.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, blocksService.ErrBlockNotFound):
		handlers.RespondNotFound(w, msgBlockNotFound)

	case errors.Is(err, blocksService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
