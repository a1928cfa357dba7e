// Command assess runs a single forecast aggregation batch and prints the
// per-city assessments as JSON. It wires the same catalog, client, and
// reduction code used by the riskd service, making it useful for sanity
// checks against the live Open-Meteo API and for regenerating test fixtures.
//
// Usage:
//
//	go run ./cmd/assess \
//	  -cities data/worldcities.csv \
//	  -region "Rio Grande do Sul" \
//	  -policy three-tier \
//	  -out assessments.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/guaibalabs/weather-risk/internal/adapter/openmeteo"
	"github.com/guaibalabs/weather-risk/internal/catalog"
	"github.com/guaibalabs/weather-risk/internal/domain"
	"github.com/guaibalabs/weather-risk/internal/engine"
	"github.com/guaibalabs/weather-risk/internal/observability"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	citiesPath := flag.String("cities", "data/worldcities.csv", "path to the worldcities CSV catalog")
	region := flag.String("region", "Rio Grande do Sul", "admin region to assess")
	policyName := flag.String("policy", "default", "risk policy: default or three-tier")
	baseURL := flag.String("base-url", openmeteo.DefaultBaseURL, "Open-Meteo API base URL")
	timeout := flag.Duration("timeout", 15*time.Second, "per-city fetch timeout")
	concurrency := flag.Int("concurrency", 16, "maximum concurrent fetches")
	out := flag.String("out", "", "output file (default stdout)")
	fixedTime := flag.String("fixed-time", "", "RFC3339 timestamp for reproducible assessed_at values")
	verbose := flag.Bool("v", false, "log fetch progress to stderr")
	flag.Parse()

	if *fixedTime != "" {
		at, err := time.Parse(time.RFC3339, *fixedTime)
		if err != nil {
			return fmt.Errorf("parse -fixed-time: %w", err)
		}
		domain.SetClock(clockwork.NewFakeClockAt(at))
		defer domain.SetClock(nil)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	policy, err := domain.PolicyByName(*policyName)
	if err != nil {
		return err
	}

	cities := catalog.New(*citiesPath, *region)
	client := openmeteo.NewClient(openmeteo.Config{
		BaseURL: *baseURL,
		Timeout: *timeout,
	}, logger)
	reducer := domain.NewReducer(policy)
	metrics := observability.NewMetricsForTesting()

	agg := engine.New(cities, client, reducer, logger, metrics, *timeout, *concurrency)

	results, err := agg.Run(context.Background())
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	data = append(data, '\n')

	if *out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Printf("wrote %d assessments: %s", len(results), *out)
	return nil
}
