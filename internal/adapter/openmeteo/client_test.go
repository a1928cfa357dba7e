package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guaibalabs/weather-risk/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, Timeout: 5 * time.Second}, discardLogger())
}

const validBody = `{
	"hourly": {
		"temperature_2m": [10.0, null, 14.5],
		"precipitation": [0.0, 1.2, null],
		"windspeed_10m": [12.0, 33.0, 8.0],
		"precipitation_probability": [10, 80, 40],
		"pressure_msl": [1012.1, 1011.5, null],
		"direct_radiation": [0.0, 150.0, 420.0]
	},
	"daily": {
		"temperature_2m_max": [16.0],
		"temperature_2m_min": [4.0],
		"precipitation_sum": [2.4]
	}
}`

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "-30.0331", q.Get("latitude"))
		assert.Equal(t, "-51.23", q.Get("longitude"))
		assert.Equal(t, hourlyFields, q.Get("hourly"))
		assert.Equal(t, dailyFields, q.Get("daily"))
		assert.Equal(t, timezone, q.Get("timezone"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(validBody))
	}))
	defer srv.Close()

	raw, err := testClient(srv.URL).Fetch(context.Background(), -30.0331, -51.23)
	require.NoError(t, err)

	require.Len(t, raw.Hourly.Temperature, 3)
	require.NotNil(t, raw.Hourly.Temperature[0])
	assert.Equal(t, 10.0, *raw.Hourly.Temperature[0])
	assert.Nil(t, raw.Hourly.Temperature[1], "null entries decode to nil")
	require.Len(t, raw.Daily.PrecipitationSum, 1)
	assert.Equal(t, 2.4, *raw.Daily.PrecipitationSum[0])
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), -30, -51)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Reason, "status 429")
}

func TestFetch_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hourly": {"temperature_2m": "not-an-array"`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), -30, -51)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestFetch_WrongShapeIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message": "no forecast here"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), -30, -51)

	require.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).Fetch(ctx, -30, -51)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := testClient(srv.URL).Fetch(context.Background(), -30, -51)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestFetch_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := testClient(srv.URL)

	var err error
	for i := 0; i < 10; i++ {
		_, err = c.Fetch(context.Background(), -30, -51)
		require.Error(t, err)
	}

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "circuit open", fetchErr.Reason)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
