package blocks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	blocksService "github.com/m04kA/SMC-SpaBookingService/internal/service/blocks"
	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()

	store := memstore.New()
	slots, err := domain.ParseWeeklySlots(map[string][]string{"viernes": {"10:00", "12:00"}})
	require.NoError(t, err)
	store.AddService(domain.Service{Name: "Tina caliente", MaxSimultaneous: 1, WeeklySlots: slots})

	h := NewHandler(blocksService.NewService(store, store, logger.Nop{}), logger.Nop{})

	r := mux.NewRouter()
	staff := r.PathPrefix("/services/{serviceId}").Subrouter()
	staff.Use(middleware.Auth, middleware.StaffOnly)
	staff.HandleFunc("/day-blocks", h.CreateDayBlock).Methods(http.MethodPost)
	staff.HandleFunc("/day-blocks/{date}", h.DeleteDayBlock).Methods(http.MethodDelete)
	staff.HandleFunc("/slot-blocks", h.CreateSlotBlock).Methods(http.MethodPost)
	staff.HandleFunc("/slot-blocks/{date}/{time}", h.DeleteSlotBlock).Methods(http.MethodDelete)
	staff.HandleFunc("/blocks", h.ListBlocks).Methods(http.MethodGet)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "5")
	req.Header.Set(middleware.HeaderUserRole, "staff")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_DayBlockLifecycle(t *testing.T) {
	r := newRouter(t)

	rec := do(r, http.MethodPost, "/services/1/day-blocks", `{"date": "2025-01-03", "reason": " mantención "}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var block DayBlockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &block))
	require.NotNil(t, block.Reason)
	assert.Equal(t, "mantención", *block.Reason)
	assert.Equal(t, int64(5), block.CreatedBy)

	rec = do(r, http.MethodGet, "/services/1/blocks?date=2025-01-03", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list BlocksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.NotNil(t, list.DayBlock)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/services/1/day-blocks/2025-01-03", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/services/1/day-blocks/2025-01-03", "").Code)
}

func TestHandler_SlotBlocks(t *testing.T) {
	r := newRouter(t)

	rec := do(r, http.MethodPost, "/services/1/slot-blocks", `{"date": "2025-01-03", "startTime": "11:00"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "time outside template")

	rec = do(r, http.MethodPost, "/services/1/slot-blocks", `{"date": "2025-01-03", "startTime": "12:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, http.MethodGet, "/services/1/blocks?date=2025-01-03", "")
	var list BlocksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Nil(t, list.DayBlock)
	require.Len(t, list.SlotBlocks, 1)
	assert.Equal(t, "12:00", list.SlotBlocks[0].StartTime)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/services/1/slot-blocks/2025-01-03/12:00", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/services/1/slot-blocks/2025-01-03/12:00", "").Code)
}

func TestHandler_Errors(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/services/77/day-blocks", `{"date": "2025-01-03"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/services/1/day-blocks", `{"date": "tomorrow"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/services/1/slot-blocks", `{"date": "2025-01-03", "startTime": "noon"}`).Code)

	req := httptest.NewRequest(http.MethodPost, "/services/1/day-blocks", strings.NewReader(`{"date": "2025-01-03"}`))
	req.Header.Set(middleware.HeaderUserID, "9")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code, "clients cannot block")
}
