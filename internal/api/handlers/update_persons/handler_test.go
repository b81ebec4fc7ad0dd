package update_persons

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	updatePersons "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_persons"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

type stubUseCase struct {
	got  *updatePersons.Request
	resp *updatePersons.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *updatePersons.Request) (*updatePersons.Response, error) {
	s.got = req
	return s.resp, s.err
}

func call(h *Handler, lineID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"reservationId": "1", "lineId": lineID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	uc := &stubUseCase{resp: &updatePersons.Response{
		Line: &domain.ReservationLine{ID: 5, Date: time.Now(), StartTime: "10:00", Persons: 3,
			UnitPriceFrozen: decimal.NewFromInt(1000), Status: domain.LineActive},
		Total: decimal.NewFromInt(3000),
	}}

	rec := call(NewHandler(uc, logger.Nop{}), "5", `{"persons": 3}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), uc.got.LineID)
	assert.Equal(t, 3, uc.got.Persons)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, call(NewHandler(&stubUseCase{}, logger.Nop{}), "x", `{"persons": 3}`).Code)

	tests := map[error]int{
		fmt.Errorf("%w: persons=9", domain.ErrCapacity): http.StatusUnprocessableEntity,
		updatePersons.ErrReservationClosed:              http.StatusConflict,
		updatePersons.ErrLineNotFound:                   http.StatusNotFound,
		updatePersons.ErrReservationNotFound:            http.StatusNotFound,
		updatePersons.ErrInvalidInput:                   http.StatusBadRequest,
		updatePersons.ErrInternal:                       http.StatusInternalServerError,
	}
	for err, status := range tests {
		rec := call(NewHandler(&stubUseCase{err: err}, logger.Nop{}), "5", `{"persons": 3}`)
		assert.Equal(t, status, rec.Code, err.Error())
	}
}
