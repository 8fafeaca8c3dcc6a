package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func setupTestMeter(t *testing.T) (metric.Meter, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return provider.Meter("test"), reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetricByName(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestHTTPMetrics(t *testing.T) {
	meter, reader := setupTestMeter(t)
	handler, err := HTTPMetricsWithMeter(meter)
	require.NoError(t, err)

	r := gin.New()
	r.Use(handler)
	r.GET("/assess/referrals/:referralId/status-history", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/assess/referrals/R1/status-history", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/assess/referrals/R2/status-history", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	rm := collectMetrics(t, reader)

	t.Run("request_total by route template", func(t *testing.T) {
		m := findMetricByName(rm, "http_server_request_total")
		require.NotNil(t, m)
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)

		counts := map[string]int64{}
		for _, dp := range sum.DataPoints {
			route, _ := dp.Attributes.Value(attribute.Key("http.route"))
			counts[route.AsString()] += dp.Value
		}
		assert.Equal(t, int64(2), counts["/assess/referrals/:referralId/status-history"])
		assert.Equal(t, int64(1), counts["unmatched"])
	})

	t.Run("duration recorded", func(t *testing.T) {
		m := findMetricByName(rm, "http_server_request_duration_seconds")
		require.NotNil(t, m)
		hist, ok := m.Data.(metricdata.Histogram[float64])
		require.True(t, ok)
		var total uint64
		for _, dp := range hist.DataPoints {
			total += dp.Count
		}
		assert.Equal(t, uint64(3), total)
	})

	t.Run("no requests in flight afterwards", func(t *testing.T) {
		m := findMetricByName(rm, "http_server_active_requests")
		require.NotNil(t, m)
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		for _, dp := range sum.DataPoints {
			assert.Equal(t, int64(0), dp.Value)
		}
	})
}

func TestHTTPMetrics_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(HTTPMetrics(HTTPMetricsConfig{Enabled: false}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
