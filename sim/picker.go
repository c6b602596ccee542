package sim

import (
	"fmt"
)

// Picker takes work requests from the batcher, walks their route picking one
// item per location onto the raw pallet, and drops the pallet at marshaling.
type Picker struct {
	baseWorker
	route []Location
}

func newPicker(wh *Warehouse, name string) *Picker {
	return &Picker{baseWorker: newBaseWorker(wh, RolePicker, name)}
}

// Receive takes the next work request waiting to be picked.
func (p *Picker) Receive() error {
	if err := p.checkReady(); err != nil {
		return err
	}
	req, ok := p.wh.Batcher.Next()
	if !ok {
		return p.reject("receive", fmt.Errorf("%w: no pick requests available, %s ready", ErrNoWork, p.name))
	}
	route, err := req.Route(p.wh.Inventory)
	if err != nil {
		// The request references a SKU the warehouse does not stock.
		p.wh.Batcher.Return(req)
		return p.reject("receive", fmt.Errorf("%w: WorkRequest %d: %w", ErrConfig, req.ID(), err))
	}
	p.begin(req)
	p.route = route
	p.logger.Infof("Picker %s received WorkRequest %d", p.name, req.ID())
	return nil
}

// Act picks sku if it is stored at the next location on the route.
func (p *Picker) Act(tok Token) error {
	if err := p.checkActive("act"); err != nil {
		return err
	}
	sku := tok.Value
	raw := p.active.RawPallet()
	if raw.IsFull() || p.progress >= len(p.route) {
		return p.reject("act", fmt.Errorf("%w: maximum number of fascia have been picked for WorkRequest %d",
			ErrPalletFull, p.active.ID()))
	}

	loc, err := p.wh.Inventory.LocationOf(sku)
	if err != nil {
		return p.reject("act", err)
	}
	want := p.route[p.progress]
	if loc.Key() != want.Key() {
		return p.reject("act", fmt.Errorf("%w: wrong item, %s is at %s; pick the item at %s",
			ErrMismatch, sku, loc, want))
	}
	if err := p.wh.Inventory.Pick(loc.Key()); err != nil {
		return p.reject("act", err)
	}
	if err := raw.Append(sku); err != nil {
		// Unreachable while raw.IsFull was false; undo the pick regardless.
		_ = p.wh.Inventory.PutBack(loc.Key())
		return p.reject("act", err)
	}
	p.progress++
	p.wh.metrics.observePick()
	p.logger.Infof("Picker %s picks fascia %s from location %s", p.name, sku, loc)
	return nil
}

// Push marks the request picked and takes it to marshaling.
func (p *Picker) Push() error {
	if err := p.checkActive("push"); err != nil {
		return err
	}
	req := p.active
	if p.progress < len(p.route) {
		p.logger.Warnf("Picker %s pushes WorkRequest %d with %d of %d items picked",
			p.name, req.ID(), p.progress, len(p.route))
	}
	req.mark(RequestPicked)
	p.wh.Marshaling.Deposit(req)
	p.wh.metrics.observeStage(RequestPicked)
	p.logger.Infof("Picker %s takes WorkRequest %d to marshaling", p.name, req.ID())
	p.finish()
	p.route = nil
	return nil
}
