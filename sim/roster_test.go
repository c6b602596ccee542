package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster_Hire_SameNameTwice_ReturnsSameWorker(t *testing.T) {
	wh := testWarehouse(t, DefaultConfig())
	a := hire(t, wh, RolePicker, "Alice")
	b := hire(t, wh, RolePicker, "Alice")
	assert.Same(t, a, b)
	assert.Equal(t, 1, wh.Roster.Len())
}

func TestRoster_Hire_CreatesRoleSpecificWorkers(t *testing.T) {
	wh := testWarehouse(t, DefaultConfig())
	tests := map[Role]any{
		RolePicker:      &Picker{},
		RoleSequencer:   &Sequencer{},
		RoleLoader:      &Loader{},
		RoleReplenisher: &Replenisher{},
	}
	for role, want := range tests {
		w := hire(t, wh, role, string(role)+"-1")
		assert.IsType(t, want, w)
		assert.Equal(t, role, w.Role())
		assert.True(t, w.Ready())
	}
	assert.Equal(t, []string{"Loader-1", "Picker-1", "Replenisher-1", "Sequencer-1"}, wh.Roster.Names())
}

func TestRoster_Hire_RoleConflict(t *testing.T) {
	wh := testWarehouse(t, DefaultConfig())
	hire(t, wh, RolePicker, "Alice")

	_, err := wh.Roster.Hire(RoleLoader, "Alice")

	assert.ErrorIs(t, err, ErrRoleConflict)
}

func TestRoster_Hire_UnknownRole(t *testing.T) {
	wh := testWarehouse(t, DefaultConfig())
	_, err := wh.Roster.Hire(Role("Driver"), "Dan")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRoster_Get_UnknownWorker(t *testing.T) {
	wh := testWarehouse(t, DefaultConfig())
	_, err := wh.Roster.Get("Nobody")
	assert.ErrorIs(t, err, ErrUnknownWorker)

	hire(t, wh, RoleLoader, "Lou")
	w, err := wh.Roster.Get("Lou")
	require.NoError(t, err)
	assert.Equal(t, "Lou", w.Name())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("Sequencer")
	require.NoError(t, err)
	assert.Equal(t, RoleSequencer, r)

	_, err = ParseRole("sequencer")
	assert.ErrorIs(t, err, ErrUnknownRole)
}
