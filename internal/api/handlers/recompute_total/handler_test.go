package recompute_total

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	recomputeTotal "github.com/m04kA/SMC-SpaBookingService/internal/usecase/recompute_total"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

type stubUseCase struct {
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *recomputeTotal.Request) (*recomputeTotal.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &recomputeTotal.Response{
		ReservationID: req.ReservationID,
		Total:         decimal.NewFromInt(85000),
		Discounts: []*domain.AppliedDiscount{
			{PackID: 1, PackName: "Tina + Cabaña", Amount: decimal.NewFromInt(10000), LineIDs: []int64{1, 2}},
		},
	}, nil
}

func call(h *Handler) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{"reservationId": "4"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	rec := call(NewHandler(&stubUseCase{}, logger.Nop{}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"reservationId": 4,
		"total": "85000.00",
		"discounts": [{"packId": 1, "packName": "Tina + Cabaña", "amount": "10000.00", "lineIds": [1, 2]}]
	}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, call(NewHandler(&stubUseCase{err: recomputeTotal.ErrReservationNotFound}, logger.Nop{})).Code)
	assert.Equal(t, http.StatusInternalServerError, call(NewHandler(&stubUseCase{err: recomputeTotal.ErrInternal}, logger.Nop{})).Code)
}
