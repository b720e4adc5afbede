package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry_RegistersOwnCollectors(t *testing.T) {
	reg := NewRegistry()

	SolveStatusTotal.WithLabelValues("optimal").Inc()
	count := testutil.ToFloat64(SolveStatusTotal.WithLabelValues("optimal"))
	if count < 1 {
		t.Errorf("SolveStatusTotal counter did not increment")
	}

	if _, err := reg.Gather(); err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
}

func TestNewRegistry_AcceptsExtraCollectors(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{Name: "extra_test_total"})
	reg := NewRegistry(extra)
	if _, err := reg.Gather(); err != nil {
		t.Fatalf("Gather() error with extra collector registered: %v", err)
	}
}

func TestBalanceGap_SetAndRead(t *testing.T) {
	BalanceGap.WithLabelValues("primary_total").Set(3)
	if got := testutil.ToFloat64(BalanceGap.WithLabelValues("primary_total")); got != 3 {
		t.Errorf("BalanceGap = %v, want 3", got)
	}
}
