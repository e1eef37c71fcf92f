package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestGinMiddlewareRecordsDuration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewHTTPMetrics(Config{ServiceName: "shabangnet"}, provider)
	if err != nil {
		t.Fatalf("new http metrics: %v", err)
	}

	engine := gin.New()
	engine.Use(GinMiddleware(m))
	engine.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(rm.ScopeMetrics) != 1 {
		t.Fatalf("expected one instrumentation scope, got %d", len(rm.ScopeMetrics))
	}
	scope := rm.ScopeMetrics[0]
	if scope.Scope.Name != "shabangnet/http" {
		t.Fatalf("unexpected meter name %q", scope.Scope.Name)
	}

	var sawDuration bool
	for _, instrument := range scope.Metrics {
		if instrument.Name == "http.server.duration_ms" {
			sawDuration = true
		}
	}
	if !sawDuration {
		t.Fatal("expected a recorded request duration")
	}
}

func TestGinMiddlewareNilMetricsPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(GinMiddleware(nil))
	engine.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
