package get_service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-SpaBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

func TestHandler(t *testing.T) {
	store := memstore.New()
	slots, err := domain.ParseWeeklySlots(map[string][]string{"lunes": {"15:00"}})
	require.NoError(t, err)
	kind := domain.KindTina
	store.AddService(domain.Service{
		Name:            "Tina caliente",
		DurationMinutes: 120,
		PriceBase:       decimal.RequireFromString("25000.5"),
		CapacityMin:     2,
		CapacityMax:     6,
		MaxSimultaneous: 2,
		WeeklySlots:     slots,
		Kind:            &kind,
	})

	r := mux.NewRouter()
	r.HandleFunc("/services/{serviceId}", NewHandler(catalog.NewService(store, logger.Nop{}), logger.Nop{}).Handle)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/services/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"id": 1,
		"name": "Tina caliente",
		"kind": "tina",
		"durationMinutes": 120,
		"priceBase": "25000.50",
		"capacityMin": 2,
		"capacityMax": 6,
		"maxSimultaneous": 2,
		"parallelBookings": true,
		"weeklySlots": {"monday": ["15:00"]}
	}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, get("/services/99").Code)
	assert.Equal(t, http.StatusBadRequest, get("/services/abc").Code)

	store.FailNext["GetServiceByID"] = assert.AnError
	assert.Equal(t, http.StatusInternalServerError, get("/services/1").Code)
}
