package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestQuotationEvent(t *testing.T) {
	m := New()
	m.QuotationEvent("created")
	m.QuotationEvent("created")
	m.QuotationEvent("finalized")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.quotationEvents.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quotationEvents.WithLabelValues("finalized")))
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/api/quotations", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/quotations", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.QuotationEvent("created")
		m.ObserveRequest("GET", "/", 200, time.Second)
		m.ObserveExport("pdf", time.Second)
	})
}
