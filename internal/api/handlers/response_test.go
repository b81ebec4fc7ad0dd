package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Persons int `json:"persons"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"persons": 2}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, 2, dst.Persons)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"persons": 2, "price": 1}`))
	assert.Error(t, DecodeJSON(r, &dst), "unknown fields rejected")

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestRespondConflictWithReason(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflictWithReason(rec, "слот недоступен", "slot_blocked")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "slot_blocked", body.Reason)
}

func TestPathIDAndParseDate(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42", "bad": "-1"})

	id, err := PathID(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = PathID(r, "bad")
	assert.Error(t, err)
	_, err = PathID(r, "missing")
	assert.Error(t, err)

	d, err := ParseDate("2025-01-03")
	require.NoError(t, err)
	assert.Equal(t, 3, d.Day())

	_, err = ParseDate("03/01/2025")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}
