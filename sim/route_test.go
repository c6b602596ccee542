package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRoute_SortsSKUsLexicographically(t *testing.T) {
	// GIVEN SKUs whose lexicographic order differs from numeric order
	inv := NewInventory(DefaultConfig().Stock, discardLogger(), nil)
	require.NoError(t, inv.AddFace(Location{"A", "0", "0", "0"}, "10"))
	require.NoError(t, inv.AddFace(Location{"B", "0", "0", "0"}, "9"))
	require.NoError(t, inv.AddFace(Location{"C", "0", "0", "0"}, "2"))

	// WHEN a route is planned
	route, err := PlanRoute([]string{"9", "2", "10"}, inv)
	require.NoError(t, err)

	// THEN it visits "10", "2", "9" in that order
	keys := make([]string, len(route))
	for i, l := range route {
		keys[i] = l.Key()
	}
	assert.Equal(t, []string{"A000", "C000", "B000"}, keys)
}

func TestPlanRoute_DoesNotReorderInput(t *testing.T) {
	inv := testInventory(t, DefaultConfig().Stock, nil)
	items := []string{"8", "1"}
	_, err := PlanRoute(items, inv)
	require.NoError(t, err)
	assert.Equal(t, []string{"8", "1"}, items)
}

func TestPlanRoute_UnknownSKU(t *testing.T) {
	inv := testInventory(t, DefaultConfig().Stock, nil)
	_, err := PlanRoute([]string{"1", "42"}, inv)
	assert.ErrorIs(t, err, ErrUnknownSKU)
}
