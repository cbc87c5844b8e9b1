package update_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
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
	updateSlot "github.com/m04kA/SMC-InventoryService/internal/usecase/update_slot"
	"github.com/m04kA/SMC-InventoryService/pkg/logger"
	"github.com/m04kA/SMC-InventoryService/pkg/metrics"
)

func setup(t *testing.T) (*mux.Router, int64) {
	t.Helper()
	repo := slotmemory.NewRepository()
	slot, err := repo.Create(context.Background(), &domain.Slot{
		ResourceID:  "tour-1",
		Date:        domain.TruncateToDay(time.Now().AddDate(0, 0, 10)),
		MaxCapacity: 10,
	})
	require.NoError(t, err)

	uc := updateSlot.NewUseCase(repo, events.NoopPublisher{}, metrics.NopRecorder{}, logger.NewNop())
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/inventory/slots/{slotId}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPatch)
	return r, slot.ID
}

func patch(r http.Handler, id string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/inventory/slots/"+id, strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "admin")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Updated(t *testing.T) {
	r, id := setup(t)

	rec := patch(r, strconv.FormatInt(id, 10), `{"availableCount":3,"status":"maintenance","notes":"boat repair"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var slot models.SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slot))
	assert.Equal(t, 3, slot.AvailableCount)
	assert.Equal(t, "MAINTENANCE", slot.Status)
	assert.Equal(t, "boat repair", *slot.Notes)
}

func TestHandle_Errors(t *testing.T) {
	r, id := setup(t)
	slotID := strconv.FormatInt(id, 10)

	assert.Equal(t, http.StatusBadRequest, patch(r, "abc", `{"notes":"x"}`).Code)
	assert.Equal(t, http.StatusNotFound, patch(r, "999", `{"notes":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(r, slotID, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(r, slotID, `{"availableCount":11}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(r, slotID, `{"status":"closed"}`).Code)
}
