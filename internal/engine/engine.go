// Package engine orchestrates concurrent per-city fetch, reduce, and
// classify pipelines and assembles the batch result.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guaibalabs/weather-risk/internal/domain"
	"github.com/guaibalabs/weather-risk/internal/observability"
)

// Catalog supplies the municipality set for each batch.
type Catalog interface {
	List() ([]domain.Location, error)
}

// Fetcher retrieves one city's raw forecast. Implementations must be safe
// for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (domain.RawForecast, error)
}

const defaultConcurrency = 16

// Aggregator runs one fetch-reduce-classify batch over the whole catalog.
// Per-city failures are absorbed into empty-statistics markers; only a
// catalog failure aborts a batch.
type Aggregator struct {
	catalog     Catalog
	fetcher     Fetcher
	reducer     domain.Reducer
	logger      *slog.Logger
	metrics     *observability.Metrics
	fetchTimeout time.Duration
	concurrency int
	ready       atomic.Bool
}

// New creates an Aggregator. fetchTimeout bounds each city's fetch
// independently; concurrency caps in-flight fetches (<=0 uses the default).
func New(catalog Catalog, fetcher Fetcher, reducer domain.Reducer, logger *slog.Logger, metrics *observability.Metrics, fetchTimeout time.Duration, concurrency int) *Aggregator {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Aggregator{
		catalog:      catalog,
		fetcher:      fetcher,
		reducer:      reducer,
		logger:       logger,
		metrics:      metrics,
		fetchTimeout: fetchTimeout,
		concurrency:  concurrency,
	}
}

// CheckReadiness returns nil once at least one batch has completed.
func (a *Aggregator) CheckReadiness(_ context.Context) error {
	if !a.ready.Load() {
		return errors.New("no assessment batch has completed yet")
	}
	return nil
}

// Run executes one batch and returns one CityResult per catalog entry, in
// catalog order. Tasks complete in arbitrary order; each result is written
// at its originating index, never by completion order.
func (a *Aggregator) Run(ctx context.Context) ([]domain.CityResult, error) {
	locations, err := a.catalog.List()
	if err != nil {
		return nil, fmt.Errorf("list municipalities: %w", err)
	}

	a.metrics.BatchRunning.Set(1)
	defer a.metrics.BatchRunning.Set(0)

	start := domain.Clock().Now()
	a.logger.Info("batch started", "cities", len(locations), "policy", a.reducer.PolicyName())

	results := make([]domain.CityResult, len(locations))
	sem := make(chan struct{}, a.concurrency)
	var wg sync.WaitGroup

	for i, loc := range locations {
		wg.Add(1)
		go func(i int, loc domain.Location) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = a.assessCity(ctx, loc)
		}(i, loc)
	}

	// Single join point: no result is read until every task has finished.
	wg.Wait()

	assessed, noData := 0, 0
	for _, r := range results {
		if r.Stats == nil {
			noData++
			continue
		}
		assessed++
		a.metrics.RiskTiers.WithLabelValues(string(r.Stats.RiskLevel)).Inc()
	}

	elapsed := domain.Clock().Since(start)
	a.metrics.BatchesCompleted.Inc()
	a.metrics.BatchDuration.Observe(elapsed.Seconds())
	a.metrics.CitiesAssessed.Set(float64(assessed))
	a.metrics.CitiesNoData.Set(float64(noData))
	a.ready.Store(true)

	a.logger.Info("batch completed",
		"cities", len(results),
		"assessed", assessed,
		"no_data", noData,
		"duration", elapsed,
	)

	return results, nil
}

// assessCity runs one city's pipeline. A fetch failure of any kind,
// including timeout and cancellation, yields the empty-statistics marker.
func (a *Aggregator) assessCity(ctx context.Context, loc domain.Location) domain.CityResult {
	a.metrics.FetchesStarted.Inc()
	a.logger.Debug("fetch started", "city", loc.City)

	fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()

	raw, err := a.fetcher.Fetch(fetchCtx, loc.Lat, loc.Lon)
	assessedAt := domain.Clock().Now().UTC()
	if err != nil {
		a.metrics.FetchesFailed.Inc()
		a.logger.Warn("fetch failed, city marked as no data", "city", loc.City, "error", err)
		return domain.CityResult{Location: loc, AssessedAt: assessedAt}
	}

	stats := a.reducer.Reduce(raw)
	return domain.CityResult{Location: loc, Stats: &stats, AssessedAt: assessedAt}
}
