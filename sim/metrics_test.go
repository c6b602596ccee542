package sim

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilReceiver_IsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observeOrder()
		m.observePick()
		m.observeStage(RequestLoaded)
		m.observeRejection(RolePicker, ErrMismatch)
	})
	assert.NoError(t, m.Print(&bytes.Buffer{}))
}

func TestMetrics_ObserveRejection_LabelsByRoleAndClass(t *testing.T) {
	m := NewMetrics("test")
	m.observeRejection(RolePicker, fmt.Errorf("%w: x", ErrMismatch))
	m.observeRejection(RolePicker, ErrMismatch)
	m.observeRejection(RoleLoader, ErrNoWork)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Rejections.WithLabelValues("Picker", "mismatch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejections.WithLabelValues("Loader", "unavailable")))
}

func TestMetrics_ObserveStage_LoadedCountsLoads(t *testing.T) {
	m := NewMetrics("test")
	m.observeStage(RequestPicked)
	m.observeStage(RequestLoaded)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageTransitions.WithLabelValues("picked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WorkRequestsLoaded))
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	// Two warehouses in one process must not share counters.
	a, b := NewMetrics("test"), NewMetrics("test")
	a.observeOrder()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.OrdersSubmitted))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.OrdersSubmitted))
}

func TestMetrics_Print_WritesSummary(t *testing.T) {
	m := NewMetrics("")
	m.observeOrder()
	m.observeRejection(RoleSequencer, ErrReworked)

	var buf bytes.Buffer
	require.NoError(t, m.Print(&buf))

	out := buf.String()
	assert.Contains(t, out, "=== Simulation Metrics ===")
	assert.Contains(t, out, "warehouse_orders_submitted_total")
	assert.Contains(t, out, "class=integrity")
}
