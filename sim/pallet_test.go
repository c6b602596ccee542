package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPallet_Append_FillsLeftToRight(t *testing.T) {
	// GIVEN an empty pallet of capacity 3
	p := NewPallet(3)

	// WHEN two items are appended
	assert.NoError(t, p.Append("a"))
	assert.NoError(t, p.Append("b"))

	// THEN they occupy slots 0 and 1 and the cursor is 2
	assert.Equal(t, "a", p.ItemAt(0))
	assert.Equal(t, "b", p.ItemAt(1))
	assert.Equal(t, "", p.ItemAt(2))
	assert.Equal(t, 2, p.Len())
	assert.False(t, p.IsFull())
}

func TestPallet_Append_AtCapacity_ReturnsErrPalletFull(t *testing.T) {
	// GIVEN a full pallet
	p := NewPallet(2)
	_ = p.Append("a")
	_ = p.Append("b")

	// WHEN a third item is appended
	err := p.Append("c")

	// THEN it is rejected and nothing is overwritten
	if !errors.Is(err, ErrPalletFull) {
		t.Fatalf("Append on full pallet: got %v, want ErrPalletFull", err)
	}
	assert.Equal(t, []string{"a", "b"}, p.Items())
}

func TestPallet_Remove_LeavesHoleAndKeepsCursor(t *testing.T) {
	// GIVEN a pallet holding [a b a]
	p := NewPallet(4)
	for _, s := range []string{"a", "b", "a"} {
		_ = p.Append(s)
	}

	// WHEN "a" is removed
	ok := p.Remove("a")

	// THEN only the first "a" is emptied and the cursor does not move
	assert.True(t, ok)
	assert.Equal(t, []string{"", "b", "a", ""}, p.Items())
	assert.Equal(t, 3, p.Len())
	assert.True(t, p.Contains("a"))

	// AND removing an absent item reports false
	assert.False(t, p.Remove("z"))
}

func TestPallet_Clear_EmptiesSlotsAndRewindsCursor(t *testing.T) {
	p := NewPallet(2)
	_ = p.Append("a")
	_ = p.Append("b")

	p.Clear()

	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 2, p.Cap())
	assert.False(t, p.Contains("a"))
	assert.NoError(t, p.Append("c"), "a cleared pallet must accept items again")
}

func TestPallet_ItemAt_OutOfRange_ReturnsEmpty(t *testing.T) {
	p := NewPallet(1)
	assert.Equal(t, "", p.ItemAt(-1))
	assert.Equal(t, "", p.ItemAt(1))
}

func TestPallet_Clone_IsIndependent(t *testing.T) {
	// GIVEN a pallet and its clone
	p := NewPallet(2)
	_ = p.Append("a")
	c := p.Clone()

	// WHEN the original is cleared
	p.Clear()

	// THEN the clone keeps its items
	assert.Equal(t, "a", c.ItemAt(0))
	assert.Equal(t, 1, c.Len())
}

func TestPallet_String_MarksEmptySlots(t *testing.T) {
	p := NewPallet(3)
	_ = p.Append("a")
	_ = p.Append("b")
	p.Remove("a")
	assert.Equal(t, "[_ b _]", p.String())
}

func TestNewPallet_NonPositiveCapacity_Panics(t *testing.T) {
	assert.Panics(t, func() { NewPallet(0) })
}
