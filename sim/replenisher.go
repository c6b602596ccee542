package sim

import (
	"fmt"
)

// Replenisher restocks pick faces that have fallen to the replenish threshold.
// Replenishing is a single step, so Push does nothing.
type Replenisher struct {
	baseWorker
	claimed *PickFace
}

func newReplenisher(wh *Warehouse, name string) *Replenisher {
	return &Replenisher{baseWorker: newBaseWorker(wh, RoleReplenisher, name)}
}

// Receive claims the oldest pick face waiting for replenishment.
func (r *Replenisher) Receive() error {
	if err := r.checkReady(); err != nil {
		return err
	}
	face, err := r.wh.Inventory.NextReplenishment()
	if err != nil {
		return r.reject("receive", fmt.Errorf("%w: %s has nothing to replenish: %w", ErrNoWork, r.name, err))
	}
	r.claimed = face
	r.ready = false
	r.progress = 0
	r.logger.Infof("Replenisher %s received request to replenish %s at %s", r.name, face.SKU(), face.Location())
	return nil
}

// Act replenishes the location given as tok.Value, which must be the claimed one.
func (r *Replenisher) Act(tok Token) error {
	if r.claimed == nil {
		return r.reject("act", fmt.Errorf("%w: Replenisher %s does not have a replenish request", ErrIdle, r.name))
	}
	want := r.claimed.Location().Key()
	if tok.Value != want {
		return r.reject("act", fmt.Errorf("%w: Replenisher %s has no replenish request for %s (holding %s)",
			ErrMismatch, r.name, tok.Value, want))
	}
	if _, err := r.wh.Inventory.Replenish(want); err != nil {
		return r.reject("act", err)
	}
	r.claimed = nil
	r.ready = true
	r.progress = 0
	return nil
}

// Push is a no-op; Act completes a replenishment on its own.
func (r *Replenisher) Push() error {
	r.logger.Infof("Replenisher %s has nothing to push", r.name)
	return nil
}
