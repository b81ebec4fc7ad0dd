package check_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	checkSlot "github.com/m04kA/SMC-SpaBookingService/internal/usecase/check_slot"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

type stubUseCase struct {
	got  *checkSlot.Request
	resp *checkSlot.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *checkSlot.Request) (*checkSlot.Response, error) {
	s.got = req
	return s.resp, s.err
}

func call(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/services/3/slots/check"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"serviceId": "3"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	uc := &stubUseCase{resp: &checkSlot.Response{Available: false, Reason: domain.ReasonSlotBlocked}}
	rec := call(NewHandler(uc, logger.Nop{}), "?date=2025-01-03&time=10:00")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10:00", uc.got.StartTime.String())

	var body CheckSlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Available)
	assert.Equal(t, "slot_blocked", body.Reason)
}

func TestHandler_BadInput(t *testing.T) {
	h := NewHandler(&stubUseCase{}, logger.Nop{})

	assert.Equal(t, http.StatusBadRequest, call(h, "?date=2025-01-03&time=25:00").Code)
	assert.Equal(t, http.StatusBadRequest, call(h, "?time=10:00").Code)

	h = NewHandler(&stubUseCase{err: checkSlot.ErrServiceNotFound}, logger.Nop{})
	assert.Equal(t, http.StatusNotFound, call(h, "?date=2025-01-03&time=10:00").Code)
}
