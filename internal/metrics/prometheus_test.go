package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndObserve(t *testing.T) {
	Register()

	before := testutil.ToFloat64(ExchangeAPICalls.WithLabelValues("delta", "orders", "success"))
	ObserveAPICall("delta", "orders", "success", time.Now().Add(-10*time.Millisecond))
	after := testutil.ToFloat64(ExchangeAPICalls.WithLabelValues("delta", "orders", "success"))
	assert.Equal(t, before+1, after)

	CatalogLoads.WithLabelValues("delta", "initial").Inc()
	CatalogSize.WithLabelValues("delta").Set(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(CatalogSize.WithLabelValues("delta")))
}

func TestHandlerServesRegisteredCollectors(t *testing.T) {
	Register()
	CacheHits.WithLabelValues("delta", "hit").Inc()

	recorder := httptest.NewRecorder()
	Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "hermes_response_cache_hits_total")
}
