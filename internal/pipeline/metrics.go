package pipeline

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/danielrosehill/Prompt-Library-Privacy-Screener/internal/pipeline"

var (
	keptCounter       metric.Int64Counter
	filteredCounter   metric.Int64Counter
	metricsOnce       sync.Once
	metricsRegistered bool
)

func initMetrics() {
	meter := otel.Meter(meterName)
	var err error
	keptCounter, err = meter.Int64Counter(
		"screener.prompts.kept",
		metric.WithDescription("Prompts that passed PII screening"),
	)
	if err != nil {
		return
	}
	filteredCounter, err = meter.Int64Counter(
		"screener.prompts.filtered",
		metric.WithDescription("Prompts discarded for PII content"),
	)
	if err != nil {
		return
	}
	metricsRegistered = true
}

func recordPromptKept(ctx context.Context) {
	metricsOnce.Do(initMetrics)
	if !metricsRegistered {
		return
	}
	keptCounter.Add(ctx, 1)
}

func recordPromptFiltered(ctx context.Context, entity string) {
	metricsOnce.Do(initMetrics)
	if !metricsRegistered {
		return
	}
	filteredCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("pii.entity", entity)))
}
