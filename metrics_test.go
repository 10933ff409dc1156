package fastjs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.NewRegistry())
}

func TestMetricsCollectorNilSafe(t *testing.T) {
	var mc *MetricsCollector

	// All recording methods must be no-ops on a nil collector.
	mc.RecordRequest("GET", "/x", 200, time.Millisecond)
	mc.RecordRequestStart("GET", "/x")
	mc.RecordRequestEnd("GET", "/x")
	mc.RecordHookVeto(HookBefore, "GET")
	mc.RecordDebounceCoalesced("GET", "/x")
	mc.RecordResend("GET")
	mc.RecordCallbackDispatch("success")
	mc.RecordError(ErrorTypeNetwork, "GET", "/x")
}

func TestMetricsRecordRequest(t *testing.T) {
	mc := newTestCollector()

	mc.RecordRequest("GET", "/users/:id", 200, 10*time.Millisecond)
	mc.RecordRequest("GET", "/users/:id", 200, 20*time.Millisecond)

	got := testutil.ToFloat64(mc.requestsTotal.WithLabelValues("GET", "200", "/users/:id"))
	if got != 2 {
		t.Errorf("Expected 2 requests recorded, got %v", got)
	}
}

func TestMetricsInFlightGauge(t *testing.T) {
	mc := newTestCollector()

	mc.RecordRequestStart("GET", "/x")
	mc.RecordRequestStart("GET", "/x")
	mc.RecordRequestEnd("GET", "/x")

	got := testutil.ToFloat64(mc.requestsInFlight.WithLabelValues("GET", "/x"))
	if got != 1 {
		t.Errorf("Expected 1 in flight, got %v", got)
	}
}

func TestMetricsHookVeto(t *testing.T) {
	mc := newTestCollector()

	mc.RecordHookVeto(HookBefore, "POST")

	got := testutil.ToFloat64(mc.hookVetoes.WithLabelValues(HookBefore, "POST"))
	if got != 1 {
		t.Errorf("Expected 1 veto, got %v", got)
	}
}

func TestMetricsRegistryExposure(t *testing.T) {
	registry := prometheus.NewRegistry()
	mc := NewMetricsCollectorWithRegistry(registry)

	if mc.GetRegistry() != registry {
		t.Error("GetRegistry should expose the supplied registry")
	}
}

func TestDispatcherRecordsPipelineMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	mc := newTestCollector()
	d := New(WithMetricsCollector(mc))

	endpoint := server.URL + "/users/:id"
	req := Get(endpoint, map[string]any{"id": "7"})
	d.Send(context.Background(), req)

	if got := testutil.ToFloat64(mc.requestsTotal.WithLabelValues("GET", "200", endpoint)); got != 1 {
		t.Errorf("Expected 1 request against the template endpoint, got %v", got)
	}
	if got := testutil.ToFloat64(mc.callbackDispatches.WithLabelValues("finally")); got != 1 {
		t.Errorf("Expected 1 finally dispatch, got %v", got)
	}
}

func TestDispatcherRecordsVetoMetrics(t *testing.T) {
	mc := newTestCollector()
	d := New(WithMetricsCollector(mc))

	req := Get("http://127.0.0.1:1/x", nil)
	req.Config.Hooks.Before = RequestHooks(func(*Request) bool { return false })
	d.Send(context.Background(), req)

	if got := testutil.ToFloat64(mc.hookVetoes.WithLabelValues(HookBefore, "GET")); got != 1 {
		t.Errorf("Expected 1 before veto, got %v", got)
	}
}
