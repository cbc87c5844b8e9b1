package check_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/infra/storage/slotmemory"
	checkAvailability "github.com/m04kA/SMC-InventoryService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-InventoryService/pkg/logger"
)

func TestHandle(t *testing.T) {
	slotDate := domain.TruncateToDay(time.Now().AddDate(0, 0, 3))
	repo := slotmemory.NewRepository()
	_, err := repo.Create(context.Background(), &domain.Slot{ResourceID: "tour-1", Date: slotDate, MaxCapacity: 10, BookedCount: 8})
	require.NoError(t, err)

	r := mux.NewRouter()
	r.HandleFunc("/resources/{resourceId}/availability",
		NewHandler(checkAvailability.NewUseCase(repo, nil, logger.NewNop()), logger.NewNop()).Handle)

	get := func(query string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resources/tour-1/availability?"+query, nil))
		return rec
	}
	date := slotDate.Format(domain.DateFormat)

	rec := get("date=" + date + "&participants=2")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Equal(t, 2, resp.RemainingSpots)
	assert.Equal(t, "LIMITED", *resp.Status)
	assert.Nil(t, resp.PriceInfo)

	// participants по умолчанию 1
	rec = get("date=" + slotDate.AddDate(0, 0, 1).Format(domain.DateFormat))
	require.Equal(t, http.StatusOK, rec.Code)
	var missing AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &missing))
	assert.False(t, missing.Available)
	assert.Nil(t, missing.Status)

	assert.Equal(t, http.StatusBadRequest, get("date=2025-13-01").Code)
	assert.Equal(t, http.StatusBadRequest, get("date="+date+"&participants=abc").Code)
	assert.Equal(t, http.StatusBadRequest, get("date="+date+"&participants=0").Code)
}
