package report

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warehouse-sim/warehouse-sim/sim"
	"github.com/warehouse-sim/warehouse-sim/sim/script"
)

// oneTruckload orders two batches and loads only the first.
const oneTruckload = `one of two requests loaded
Order S White
Order S Red
Order SE Blue
Order SES Black
Order S White
Order S Red
Order SE Blue
Order SES Black
Picker Alice ready
Picker Alice get
Picker Alice pick 1
Picker Alice pick 2
Picker Alice pick 3
Picker Alice pick 4
Picker Alice pick 5
Picker Alice pick 6
Picker Alice pick 7
Picker Alice pick 8
Picker Alice marshal
Sequencer Sue ready
Sequencer Sue get
Sequencer Sue sequence 1
Sequencer Sue sequence 2
Sequencer Sue sequence 3
Sequencer Sue sequence 4
Sequencer Sue sequence 5
Sequencer Sue sequence 6
Sequencer Sue sequence 7
Sequencer Sue sequence 8
Sequencer Sue move
Loader Lou ready
Loader Lou get
Loader Lou check 1 front
Loader Lou check 2 rear
Loader Lou check 3
Loader Lou check 4
Loader Lou check 5
Loader Lou check 6
Loader Lou check 7
Loader Lou check 8
Loader Lou load
`

// finishedWarehouse runs oneTruckload against SKUs "1".."8" stored at A,0,0,n-1.
func finishedWarehouse(t *testing.T) *sim.Warehouse {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	catalog := sim.Catalog{}
	catalog.Add("White", "S", sim.ItemPair{Front: "1", Rear: "2"})
	catalog.Add("Red", "S", sim.ItemPair{Front: "3", Rear: "4"})
	catalog.Add("Blue", "SE", sim.ItemPair{Front: "5", Rear: "6"})
	catalog.Add("Black", "SES", sim.ItemPair{Front: "7", Rear: "8"})

	wh, err := sim.NewWarehouse(sim.DefaultConfig(), catalog, logger, sim.NewMetrics("report_test"), nil)
	require.NoError(t, err)
	for n := 1; n <= 8; n++ {
		loc := sim.Location{Zone: "A", Aisle: "0", Rack: "0", Level: strconv.Itoa(n - 1)}
		require.NoError(t, wh.Inventory.AddFace(loc, strconv.Itoa(n)))
	}

	s, err := script.Parse(strings.NewReader(oneTruckload))
	require.NoError(t, err)
	require.NoError(t, wh.Run(context.Background(), s.Instructions))
	return wh
}

func TestBuild_KeepsLoadedOrdersAndNonFullFaces(t *testing.T) {
	// GIVEN a run where the first of two requests was loaded
	wh := finishedWarehouse(t)

	// WHEN the report is built
	rep := Build(wh)

	// THEN only orders 0-3 are listed and every face is one below full
	require.Len(t, rep.Orders, 4)
	for i, o := range rep.Orders {
		assert.Equal(t, i, o.ID())
	}
	require.Len(t, rep.Stock, 8)
	for _, l := range rep.Stock {
		assert.Equal(t, 29, l.Stock, l.Location.Key())
	}
}

func TestStockRows(t *testing.T) {
	wh := finishedWarehouse(t)

	rows := StockRows(wh.Inventory)

	require.Len(t, rows, 8)
	assert.Equal(t, []string{"A", "0", "0", "0", "29"}, rows[0])
	assert.Equal(t, []string{"A", "0", "0", "7", "29"}, rows[7])
}

func TestLoadedOrders_KeepsArchiveOrder(t *testing.T) {
	archive := []*sim.Order{
		sim.NewOrder(0, sim.ItemPair{Front: "1", Rear: "2"}),
		sim.NewOrder(1, sim.ItemPair{Front: "3", Rear: "4"}),
	}
	assert.Empty(t, LoadedOrders(archive), "created orders are not reported")
}

func TestReport_WriteCSV(t *testing.T) {
	// GIVEN a finished run
	rep := Build(finishedWarehouse(t))
	dir := t.TempDir()

	// WHEN the report is written
	require.NoError(t, rep.WriteCSV(dir))

	// THEN final.csv lists the stock and orders.csv the loaded orders
	stock, err := os.ReadFile(filepath.Join(dir, StockFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(stock)), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "A,0,0,0,29", lines[0])

	orders, err := os.ReadFile(filepath.Join(dir, OrdersFile))
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(string(orders)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Order # 0 Status: loaded Contains: 1 and 2", lines[0])
	assert.Equal(t, "Order # 3 Status: loaded Contains: 7 and 8", lines[3])
}

func TestReport_WriteCSV_EmptyRunWritesEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, (&Report{}).WriteCSV(dir))

	for _, name := range []string{StockFile, OrdersFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Zero(t, info.Size(), name)
	}
}

func TestReport_WriteCSV_MissingDir(t *testing.T) {
	err := (&Report{}).WriteCSV(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
