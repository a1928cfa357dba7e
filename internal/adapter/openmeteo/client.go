// Package openmeteo fetches raw hourly and daily forecasts from the
// Open-Meteo forecast API, one round trip per municipality.
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/guaibalabs/weather-risk/internal/domain"
)

// DefaultBaseURL is the public Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

const (
	hourlyFields = "temperature_2m,precipitation,windspeed_10m,precipitation_probability,pressure_msl,direct_radiation"
	dailyFields  = "temperature_2m_max,temperature_2m_min,precipitation_sum"
	timezone     = "America/Sao_Paulo"
)

// Config is the explicit construction configuration for the client. Nothing
// is read from ambient environment inside the fetch path.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the forecast HTTP client. The underlying http.Client and its
// connection pool are safe to share across concurrent fetches. The client
// performs no retries: a batch makes exactly one attempt per city, and the
// circuit breaker only short-circuits attempts during provider outages.
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		breaker:    cb,
		logger:     logger,
	}
}

// Fetch performs one forecast request for the given coordinates. Every
// failure mode (transport error, non-2xx status, open breaker, malformed
// payload) comes back as a *domain.FetchError local to this one city.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (domain.RawForecast, error) {
	params := url.Values{
		"latitude":  {formatCoord(lat)},
		"longitude": {formatCoord(lon)},
		"hourly":    {hourlyFields},
		"daily":     {dailyFields},
		"timezone":  {timezone},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.RawForecast{}, domain.NewFetchError("create request", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return domain.RawForecast{}, domain.NewFetchError("circuit open", err)
		}
		return domain.RawForecast{}, domain.NewFetchError("request", err)
	}
	resp := result.(*http.Response)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.RawForecast{}, domain.NewFetchError(
			fmt.Sprintf("status %d", resp.StatusCode),
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body),
		)
	}

	return parseForecast(resp.Body)
}

// parseForecast decodes a success-status body into the expected series
// shapes. Anything else is a malformed-payload fetch failure.
func parseForecast(r io.Reader) (domain.RawForecast, error) {
	var payload struct {
		Hourly *domain.HourlySeries `json:"hourly"`
		Daily  *domain.DailySeries  `json:"daily"`
	}

	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return domain.RawForecast{}, domain.NewFetchError("decode payload",
			fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err))
	}
	if payload.Hourly == nil && payload.Daily == nil {
		return domain.RawForecast{}, domain.NewFetchError("decode payload",
			fmt.Errorf("%w: no hourly or daily series", domain.ErrMalformedPayload))
	}

	var raw domain.RawForecast
	if payload.Hourly != nil {
		raw.Hourly = *payload.Hourly
	}
	if payload.Daily != nil {
		raw.Daily = *payload.Daily
	}
	return raw, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
