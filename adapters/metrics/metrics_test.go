package metrics_test

import (
	"testing"

	"boilerref/adapters/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSetCatalogSize(t *testing.T) {
	c := metrics.NewWith(prometheus.NewRegistry())

	c.SetCatalogSize(3, 17)
	if got := testutil.ToFloat64(c.Boilers); got != 3 {
		t.Errorf("boilers gauge = %v, want 3", got)
	}
	if got := testutil.ToFloat64(c.Surfaces); got != 17 {
		t.Errorf("surfaces gauge = %v, want 17", got)
	}

	c.SetCatalogSize(0, 0)
	if got := testutil.ToFloat64(c.Surfaces); got != 0 {
		t.Errorf("surfaces gauge after reset = %v, want 0", got)
	}
}

func TestCountersAccumulate(t *testing.T) {
	c := metrics.NewWith(prometheus.NewRegistry())

	c.ImportsTotal.Inc()
	c.ImportRecords.Add(12)
	c.MutationsTotal.WithLabelValues("add_boiler").Inc()
	c.MutationsTotal.WithLabelValues("add_boiler").Inc()

	if got := testutil.ToFloat64(c.ImportRecords); got != 12 {
		t.Errorf("import records = %v, want 12", got)
	}
	if got := testutil.ToFloat64(c.MutationsTotal.WithLabelValues("add_boiler")); got != 2 {
		t.Errorf("add_boiler mutations = %v, want 2", got)
	}
}
