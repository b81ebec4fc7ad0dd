package get_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

func TestHandler(t *testing.T) {
	store := memstore.New()
	reservation, err := store.Create(context.Background(), &domain.Reservation{ClientID: 7, PaymentState: domain.PaymentPending})
	require.NoError(t, err)
	store.AddGiftCard(reservation.ID, "GIFT-9", decimal.NewFromInt(5000))

	svc := reservations.NewService(store, store, store, store, &memstore.TxManager{}, logger.Nop{})

	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/reservations/{reservationId}", NewHandler(svc, logger.Nop{}).Handle)

	call := func(path, userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(middleware.HeaderUserID, userID)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := call("/reservations/1", "7")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.ClientID)
	require.Len(t, body.GiftCards, 1)
	assert.Equal(t, "5000.00", body.GiftCards[0].Amount)

	assert.Equal(t, http.StatusForbidden, call("/reservations/1", "8").Code)
	assert.Equal(t, http.StatusNotFound, call("/reservations/99", "7").Code)
	assert.Equal(t, http.StatusBadRequest, call("/reservations/zero", "7").Code)
}
