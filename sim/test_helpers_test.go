package sim

import (
	"io"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

// discardLogger returns a logger that drops everything.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// skuLocation is where testWarehouse stores SKU n ("1".."8"): zone A, aisle 0,
// rack 0, level n-1.
func skuLocation(n int) Location {
	return Location{Zone: "A", Aisle: "0", Rack: "0", Level: strconv.Itoa(n - 1)}
}

// testInventory returns an inventory with SKUs "1".."8" at skuLocation.
func testInventory(t *testing.T, cfg StockConfig, m *Metrics) *Inventory {
	t.Helper()
	inv := NewInventory(cfg, discardLogger(), m)
	for n := 1; n <= 8; n++ {
		require.NoError(t, inv.AddFace(skuLocation(n), strconv.Itoa(n)))
	}
	return inv
}

// testCatalog maps four color/model combinations onto (1,2) (3,4) (5,6) (7,8).
func testCatalog() Catalog {
	c := Catalog{}
	c.Add("White", "S", ItemPair{Front: "1", Rear: "2"})
	c.Add("Red", "S", ItemPair{Front: "3", Rear: "4"})
	c.Add("Blue", "SE", ItemPair{Front: "5", Rear: "6"})
	c.Add("Black", "SES", ItemPair{Front: "7", Rear: "8"})
	return c
}

// testWarehouse returns a stocked warehouse with decision tracing enabled.
func testWarehouse(t *testing.T, cfg Config) *Warehouse {
	t.Helper()
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	wh, err := NewWarehouse(cfg, testCatalog(), discardLogger(), NewMetrics("test"), tr)
	require.NoError(t, err)
	for n := 1; n <= 8; n++ {
		require.NoError(t, wh.Inventory.AddFace(skuLocation(n), strconv.Itoa(n)))
	}
	return wh
}

// standardPairs is the batch (1,2)(3,4)(5,6)(7,8).
var standardPairs = []ItemPair{{"1", "2"}, {"3", "4"}, {"5", "6"}, {"7", "8"}}

// submitBatch submits one order per pair.
func submitBatch(wh *Warehouse, pairs []ItemPair) {
	for _, p := range pairs {
		wh.Batcher.Submit(p)
	}
}

// hire returns a worker of role, failing the test on error.
func hire(t *testing.T, wh *Warehouse, role Role, name string) Worker {
	t.Helper()
	w, err := wh.Roster.Hire(role, name)
	require.NoError(t, err)
	return w
}

// act presents each sku in turn and fails the test on the first rejection.
func act(t *testing.T, w Worker, skus ...string) {
	t.Helper()
	for _, sku := range skus {
		require.NoError(t, w.Act(Token{Value: sku}), "act %s", sku)
	}
}

// pickAll receives one request with a picker, picks it in route order and pushes it.
func pickAll(t *testing.T, wh *Warehouse, p Worker) *WorkRequest {
	t.Helper()
	require.NoError(t, p.Receive())
	req := p.Active()
	route, err := req.Route(wh.Inventory)
	require.NoError(t, err)
	for _, loc := range route {
		face, err := wh.Inventory.Face(loc.Key())
		require.NoError(t, err)
		act(t, p, face.SKU())
	}
	require.NoError(t, p.Push())
	return req
}

// sequenceAll receives one request with a sequencer, sequences it in order and pushes it.
func sequenceAll(t *testing.T, s Worker) *WorkRequest {
	t.Helper()
	require.NoError(t, s.Receive())
	req := s.Active()
	act(t, s, req.Items()...)
	require.NoError(t, s.Push())
	return req
}

// loadAll receives one request with a loader, checks it in order and pushes it.
func loadAll(t *testing.T, l Worker) *WorkRequest {
	t.Helper()
	require.NoError(t, l.Receive())
	req := l.Active()
	act(t, l, req.Items()...)
	require.NoError(t, l.Push())
	return req
}
