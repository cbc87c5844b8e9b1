package adjust_capacity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InventoryService/internal/api/middleware"
	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/infra/events"
	"github.com/m04kA/SMC-InventoryService/internal/infra/storage/slotmemory"
	"github.com/m04kA/SMC-InventoryService/internal/service/slots/models"
	adjustCapacity "github.com/m04kA/SMC-InventoryService/internal/usecase/adjust_capacity"
	"github.com/m04kA/SMC-InventoryService/pkg/logger"
	"github.com/m04kA/SMC-InventoryService/pkg/metrics"
)

var slotDate = domain.TruncateToDay(time.Now().AddDate(0, 0, 14))

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	repo := slotmemory.NewRepository()
	_, err := repo.Create(context.Background(), &domain.Slot{ResourceID: "tour-1", Date: slotDate, MaxCapacity: 10})
	require.NoError(t, err)

	h := NewHandler(adjustCapacity.NewUseCase(repo, events.NoopPublisher{}, metrics.NopRecorder{}, logger.NewNop()), logger.NewNop())
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/resources/{resourceId}/reservations", h.HandleReserve).Methods(http.MethodPost)
	r.HandleFunc("/resources/{resourceId}/releases", h.HandleRelease).Methods(http.MethodPost)
	return r
}

func call(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "booking-service")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestReserveRelease(t *testing.T) {
	r := newRouter(t)
	date := slotDate.Format(domain.DateFormat)

	rec := call(r, "/resources/tour-1/reservations", `{"date":"`+date+`","participants":8}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var slot models.SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slot))
	assert.Equal(t, 2, slot.AvailableCount)
	assert.Equal(t, "LIMITED", slot.Status)

	rec = call(r, "/resources/tour-1/reservations", `{"date":"`+date+`","participants":3}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(r, "/resources/tour-1/releases", `{"date":"`+date+`","participants":8}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slot))
	assert.Equal(t, 10, slot.AvailableCount)
}

func TestReserve_Errors(t *testing.T) {
	r := newRouter(t)
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(domain.DateFormat)
	otherDay := slotDate.AddDate(0, 0, 1).Format(domain.DateFormat)

	assert.Equal(t, http.StatusNotFound, call(r, "/resources/tour-1/reservations", `{"date":"`+otherDay+`","participants":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(r, "/resources/tour-1/reservations", `{"date":"`+yesterday+`","participants":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(r, "/resources/tour-1/reservations", `{"date":"bad","participants":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(r, "/resources/tour-1/reservations", `{"date":"`+otherDay+`","participants":0}`).Code)
}
