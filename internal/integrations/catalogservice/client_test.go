package catalogservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InventoryService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, logger.NewNop())
}

func TestClient_GetTourPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/tours/tour-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"tour-1","basePrice":129.5,"currency":"EUR"}`))
	})

	price, err := client.GetTourPrice(context.Background(), "tour-1")

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("129.50").Equal(price.BasePrice))
	assert.Equal(t, "EUR", price.Currency)
}

func TestClient_GetTourPrice_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetTourPrice(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrTourNotFound)
}

func TestClient_GetTourPrice_BadResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "broken json", status: http.StatusOK, body: `{"basePrice":`},
		{name: "negative price", status: http.StatusOK, body: `{"id":"t","basePrice":-1,"currency":"EUR"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.GetTourPrice(context.Background(), "t")

			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestDegradingClient(t *testing.T) {
	down := NewDegradingClient(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}), logger.NewNop())

	_, err := down.GetTourPrice(context.Background(), "tour-1")
	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.NotErrorIs(t, err, ErrTourNotFound)

	notFound := NewDegradingClient(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}), logger.NewNop())

	_, err = notFound.GetTourPrice(context.Background(), "tour-1")
	assert.ErrorIs(t, err, ErrTourNotFound)
	assert.NotErrorIs(t, err, ErrServiceDegraded)

	up := NewDegradingClient(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"tour-1","basePrice":99,"currency":"EUR"}`))
	}), logger.NewNop())

	price, err := up.GetTourPrice(context.Background(), "tour-1")
	require.NoError(t, err)
	assert.True(t, price.BasePrice.Equal(decimal.NewFromInt(99)))
}
