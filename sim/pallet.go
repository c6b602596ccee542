package sim

import (
	"fmt"
	"strings"
)

// Pallet is a fixed-capacity surface of item slots. Items fill left to right;
// removing an item leaves a hole and does not move the fill cursor.
type Pallet struct {
	slots []string // "" marks an empty slot
	fill  int      // next slot Append writes to
}

// NewPallet creates an empty pallet with the given number of slots.
func NewPallet(capacity int) *Pallet {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewPallet: capacity must be > 0, got %d", capacity))
	}
	return &Pallet{slots: make([]string, capacity)}
}

// Cap returns the number of slots.
func (p *Pallet) Cap() int { return len(p.slots) }

// Len returns the fill cursor, i.e. how many appends the pallet has taken since the last Clear.
func (p *Pallet) Len() int { return p.fill }

// IsFull reports whether another Append would fail.
func (p *Pallet) IsFull() bool { return p.fill >= len(p.slots) }

// ItemAt returns the item at position i, or "" if the slot is empty or out of range.
func (p *Pallet) ItemAt(i int) string {
	if i < 0 || i >= len(p.slots) {
		return ""
	}
	return p.slots[i]
}

// Append places sku in the next free slot.
func (p *Pallet) Append(sku string) error {
	if p.IsFull() {
		return fmt.Errorf("%w: capacity %d reached, cannot add %s", ErrPalletFull, len(p.slots), sku)
	}
	p.slots[p.fill] = sku
	p.fill++
	return nil
}

// Remove empties the first slot holding sku and reports whether one was found.
func (p *Pallet) Remove(sku string) bool {
	for i, item := range p.slots {
		if item != "" && item == sku {
			p.slots[i] = ""
			return true
		}
	}
	return false
}

// Contains reports whether any slot holds sku.
func (p *Pallet) Contains(sku string) bool {
	for _, item := range p.slots {
		if item != "" && item == sku {
			return true
		}
	}
	return false
}

// Clear empties every slot and rewinds the fill cursor. Capacity is unchanged.
func (p *Pallet) Clear() {
	for i := range p.slots {
		p.slots[i] = ""
	}
	p.fill = 0
}

// Items returns a copy of the slots, empty slots included.
func (p *Pallet) Items() []string {
	out := make([]string, len(p.slots))
	copy(out, p.slots)
	return out
}

// Clone returns an independent copy of the pallet.
func (p *Pallet) Clone() *Pallet {
	return &Pallet{slots: p.Items(), fill: p.fill}
}

func (p *Pallet) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, item := range p.slots {
		if item == "" {
			sb.WriteString("_")
		} else {
			sb.WriteString(item)
		}
		if i < len(p.slots)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
