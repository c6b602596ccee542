package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warehouse-sim/warehouse-sim/sim"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveRun_RoundTrip(t *testing.T) {
	// GIVEN a finished run
	s := testStore(t)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rep := Build(finishedWarehouse(t))

	// WHEN it is archived
	id, err := s.SaveRun(Run{
		Description: "one of two requests loaded",
		StartedAt:   start,
		FinishedAt:  start.Add(2 * time.Second),
		Orders:      8,
		Trucks:      1,
		Report:      rep,
	})
	require.NoError(t, err)

	// THEN the summary, stock levels and loaded orders can be read back
	runs, err := s.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, "one of two requests loaded", runs[0].Description)
	assert.Equal(t, 8, runs[0].Orders)
	assert.Equal(t, 4, runs[0].LoadedOrders)
	assert.Equal(t, 1, runs[0].Trucks)
	assert.True(t, runs[0].StartedAt.Equal(start))

	levels, err := s.StockLevels(id)
	require.NoError(t, err)
	require.Len(t, levels, 8)
	assert.Equal(t, sim.Location{Zone: "A", Aisle: "0", Rack: "0", Level: "3"}, levels[3].Location)
	assert.Equal(t, "4", levels[3].SKU)
	assert.Equal(t, 29, levels[3].Stock)

	ids, err := s.LoadedOrderIDs(id)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, ids)
}

func TestStore_ListRuns_MostRecentFirst(t *testing.T) {
	s := testStore(t)
	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	first, err := s.SaveRun(Run{Description: "early", StartedAt: early, FinishedAt: early})
	require.NoError(t, err)
	second, err := s.SaveRun(Run{Description: "late", StartedAt: early.Add(time.Hour), FinishedAt: early.Add(time.Hour)})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	runs, err := s.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "late", runs[0].Description)
	assert.Equal(t, 0, runs[1].LoadedOrders, "nil report stores no orders")
}

func TestStore_Open_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.SaveRun(Run{StartedAt: time.Now(), FinishedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestStore_UnknownRun(t *testing.T) {
	s := testStore(t)

	levels, err := s.StockLevels("nope")
	require.NoError(t, err)
	assert.Empty(t, levels)

	ids, err := s.LoadedOrderIDs("nope")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSplitKey(t *testing.T) {
	assert.Equal(t, sim.Location{Zone: "B", Aisle: "1", Rack: "2", Level: "3"}, splitKey("B123"))
	assert.Equal(t, sim.Location{Zone: "AA1"}, splitKey("AA1"))
}
