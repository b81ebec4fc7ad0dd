package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_DomainCounters(t *testing.T) {
	m := NewWithRegistry("SMC-SpaBookingService", prometheus.NewRegistry())

	m.RecordLineCreated("service")
	m.RecordLineCreated("service")
	m.RecordSlotConflict("capacity_exhausted")
	m.RecordDiscountApplied("Tina + Masaje")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LinesCreatedTotal.WithLabelValues("service")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotConflictsTotal.WithLabelValues("capacity_exhausted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DiscountsAppliedTotal.WithLabelValues("Tina + Masaje")))
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, "smc_spabookingservice", namespace("SMC-SpaBookingService"))
	assert.Equal(t, "spa_booking", namespace(" "))
}
