package price

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/crypto-board/internal/apperr"
	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_History(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "3", r.URL.Query().Get("days"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prices":[
			[1704067200000, 42000.5],
			[1704110400000, 42500],
			[1704153600000, 43000],
			[1704240000000, 44000]
		]}`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	points, err := c.History(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, []domain.PricePoint{
		{Date: "2024-01-01", Price: 42500},
		{Date: "2024-01-02", Price: 43000},
		{Date: "2024-01-03", Price: 44000},
	}, points)
}

func TestClient_History_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewClient(Config{BaseURL: server.URL}).History(context.Background(), 0)
	require.Error(t, err)

	var upstream *apperr.UpstreamError
	assert.True(t, errors.As(err, &upstream))
}

func TestProject(t *testing.T) {
	history := []domain.PricePoint{
		{Date: "2024-01-01", Price: 10},
		{Date: "2024-01-02", Price: 12},
		{Date: "2024-01-03", Price: 14},
	}

	trend := Project(history, 2)

	assert.InDelta(t, 2, trend.Slope, 1e-9)
	assert.InDelta(t, 10, trend.Intercept, 1e-9)
	assert.Equal(t, history, trend.History)
	require.Len(t, trend.Projection, 2)
	assert.Equal(t, "2024-01-04", trend.Projection[0].Date)
	assert.InDelta(t, 16, trend.Projection[0].Price, 1e-9)
	assert.Equal(t, "2024-01-05", trend.Projection[1].Date)
	assert.InDelta(t, 18, trend.Projection[1].Price, 1e-9)
}

func TestProject_EdgeCases(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		trend := Project(nil, 5)
		assert.Zero(t, trend.Slope)
		assert.Empty(t, trend.Projection)
	})

	t.Run("single point is flat", func(t *testing.T) {
		trend := Project([]domain.PricePoint{{Date: "2024-01-01", Price: 7}}, 1)
		assert.Zero(t, trend.Slope)
		assert.InDelta(t, 7, trend.Intercept, 1e-9)
		require.Len(t, trend.Projection, 1)
		assert.InDelta(t, 7, trend.Projection[0].Price, 1e-9)
	})

	t.Run("negative horizon", func(t *testing.T) {
		trend := Project([]domain.PricePoint{{Date: "2024-01-01", Price: 1}, {Date: "2024-01-02", Price: 2}}, -1)
		assert.Empty(t, trend.Projection)
	})
}
