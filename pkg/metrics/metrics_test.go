package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAndHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.OrdersPlaced.WithLabelValues("card").Inc()
	m.OrdersPlaced.WithLabelValues("card").Inc()
	m.DiscountOutcomes.WithLabelValues("applied").Inc()
	m.OverrideMarks.WithLabelValues("refund").Inc()
	m.Requests.WithLabelValues("/cart", "200").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrdersPlaced.WithLabelValues("card")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DiscountOutcomes.WithLabelValues("applied")))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `storefront_orders_placed_total{payment_method="card"} 2`))
	assert.True(t, strings.Contains(string(body), `storefront_http_requests_total{route="/cart",status="200"} 1`))
	assert.True(t, strings.Contains(string(body), `storefront_discount_outcomes_total{outcome="applied"} 1`))
	assert.True(t, strings.Contains(string(body), `storefront_order_marks_total{marker="refund"} 1`))
}

func TestNewOnFreshRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
