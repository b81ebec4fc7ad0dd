package register_payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	registerPayment "github.com/m04kA/SMC-SpaBookingService/internal/usecase/register_payment"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

type stubUseCase struct {
	got *registerPayment.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *registerPayment.Request) (*registerPayment.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &registerPayment.Response{
		ReservationID: req.ReservationID,
		Total:         decimal.NewFromInt(60000),
		AmountPaid:    req.Amount,
		PaymentState:  domain.PaymentPartial,
	}, nil
}

func call(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"reservationId": "6"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	uc := &stubUseCase{}
	rec := call(NewHandler(uc, logger.Nop{}), `{"type": "payment", "amount": "20000.50"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, registerPayment.EventPayment, uc.got.Type)
	assert.True(t, uc.got.Amount.Equal(decimal.RequireFromString("20000.50")))
	assert.JSONEq(t, `{
		"reservationId": 6,
		"total": "60000.00",
		"amountPaid": "20000.50",
		"paymentState": "partial",
		"releasedLines": 0
	}`, rec.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	tests := map[error]int{
		registerPayment.ErrInvalidTransition:   http.StatusConflict,
		registerPayment.ErrReservationNotFound: http.StatusNotFound,
		registerPayment.ErrInvalidInput:        http.StatusBadRequest,
		registerPayment.ErrInternal:            http.StatusInternalServerError,
	}
	for err, status := range tests {
		rec := call(NewHandler(&stubUseCase{err: err}, logger.Nop{}), `{"type": "cancel"}`)
		assert.Equal(t, status, rec.Code, err.Error())
	}

	rec := call(NewHandler(&stubUseCase{}, logger.Nop{}), `{"type": "payment", "amount": "abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
