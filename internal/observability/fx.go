package observability

import (
	"go.uber.org/fx"

	"github.com/gwak2837/shabangnet-sub003/internal/config"
	"github.com/gwak2837/shabangnet-sub003/internal/observability/metrics"
	"github.com/gwak2837/shabangnet-sub003/internal/observability/tracing"
)

var Module = fx.Module("observability",
	fx.Provide(
		newTracingConfig,
		newMetricsConfig,
		metrics.NewMeterProvider,
		metrics.NewHTTPMetrics,
	),
	// The tracer provider registers itself globally, so it is invoked
	// rather than provided.
	fx.Invoke(tracing.NewProvider),
)

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.TracingEnabled,
		ServiceName:      cfg.ServiceName,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.TracingEndpoint,
		ExporterProtocol: cfg.TracingProtocol,
		SamplingRatio:    cfg.TracingSamplingRatio,
	}
}

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{ServiceName: cfg.ServiceName}
}
