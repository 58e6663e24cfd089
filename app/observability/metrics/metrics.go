package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	SearchRequestsTotal        metric.Int64Counter
	SearchDurationSeconds      metric.Float64Histogram
	CompletionDurationSeconds  metric.Float64Histogram
	CompletionErrorsTotal      metric.Int64Counter
	RecommendationsPerResponse metric.Int64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the instruments once, from the globally
// configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("date-spots-api")
		var err error
		m := &AppMetrics{}

		m.SearchRequestsTotal, err = meter.Int64Counter(
			"search_requests_total",
			metric.WithDescription("Total number of recommendation searches completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_requests_total: %v", err)
		}

		m.SearchDurationSeconds, err = meter.Float64Histogram(
			"search_duration_seconds",
			metric.WithDescription("End-to-end duration of recommendation searches"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_duration_seconds: %v", err)
		}

		m.CompletionDurationSeconds, err = meter.Float64Histogram(
			"completion_request_duration_seconds",
			metric.WithDescription("Duration of upstream completion API calls"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create completion_request_duration_seconds: %v", err)
		}

		m.CompletionErrorsTotal, err = meter.Int64Counter(
			"completion_errors_total",
			metric.WithDescription("Total number of upstream completion failures"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create completion_errors_total: %v", err)
		}

		m.RecommendationsPerResponse, err = meter.Int64Histogram(
			"recommendations_per_response",
			metric.WithDescription("Number of places returned per successful search"),
			metric.WithUnit("{place}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create recommendations_per_response: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
