package sim

import (
	"fmt"

	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

// Sequencer takes picked requests from marshaling and moves each item from
// the raw pallet onto the front or rear pallet in member-order position.
type Sequencer struct {
	baseWorker
}

func newSequencer(wh *Warehouse, name string) *Sequencer {
	return &Sequencer{baseWorker: newBaseWorker(wh, RoleSequencer, name)}
}

// Receive takes the oldest picked request from marshaling.
func (s *Sequencer) Receive() error {
	if err := s.checkReady(); err != nil {
		return err
	}
	req, ok := s.wh.Marshaling.Withdraw()
	if !ok {
		return s.reject("receive", fmt.Errorf("%w: no pallets available for marshaling, %s ready", ErrNoWork, s.name))
	}
	s.begin(req)
	s.logger.Infof("Sequencer %s received WorkRequest %d to sequence", s.name, req.ID())
	return nil
}

// Act sequences sku at the current position. Even positions go on the front
// pallet, odd ones on the rear pallet, both at slot progress/2.
//
// An item already sitting in its slot (after a rescan) is accepted without
// being moved again. An item that is expected here but was never put on the
// raw pallet voids the whole request and sends it back for re-picking.
func (s *Sequencer) Act(tok Token) error {
	if err := s.checkActive("act"); err != nil {
		return err
	}
	req := s.active
	sku := tok.Value
	want, side, ok := req.Expected(s.progress)
	if !ok {
		return s.reject("act", fmt.Errorf("%w: every item of WorkRequest %d is already sequenced",
			ErrPalletFull, req.ID()))
	}
	slot := s.progress / 2
	target := req.Pallet(side)

	if sku != "" && target.ItemAt(slot) == sku {
		s.progress++
		s.logger.Infof("Sequencer %s sequenced %s (already in place)", s.name, sku)
		return nil
	}
	if sku != want {
		return s.reject("act", fmt.Errorf("%w: %s is not the correct SKU to sequence; sequence %s next",
			ErrMismatch, sku, want))
	}
	if !req.RawPallet().Contains(sku) {
		return s.rework(sku)
	}
	if target.Len() != slot {
		return s.reject("act", fmt.Errorf("%w: %s pallet slot %d holds %q; rescan before sequencing %s",
			ErrMismatch, side, slot, target.ItemAt(slot), sku))
	}
	if err := target.Append(sku); err != nil {
		return s.reject("act", err)
	}
	req.RawPallet().Remove(sku)
	s.progress++
	s.wh.metrics.observeSequenced()
	s.logger.Infof("Sequencer %s sequenced %s onto the %s pallet", s.name, sku, side)
	return nil
}

// rework throws out everything on the active request's pallets and returns
// it to the front of the picking queue.
func (s *Sequencer) rework(sku string) error {
	req := s.active
	req.Void()
	s.wh.Batcher.Return(req)
	s.finish()
	s.wh.metrics.observeRework()
	s.wh.trace.RecordRework(trace.ReworkRecord{
		Clock:     s.wh.Clock(),
		Worker:    s.name,
		RequestID: req.ID(),
		SKU:       sku,
	})
	return s.reject("act", fmt.Errorf("%w: %s is not on the raw pallet of WorkRequest %d",
		ErrReworked, sku, req.ID()))
}

// Push marks the request sequenced and takes it to the loading area.
func (s *Sequencer) Push() error {
	if err := s.checkActive("push"); err != nil {
		return err
	}
	req := s.active
	if s.progress < itemsPerRequest {
		s.logger.Warnf("Sequencer %s pushes WorkRequest %d with %d of %d items sequenced",
			s.name, req.ID(), s.progress, itemsPerRequest)
	}
	req.mark(RequestSequenced)
	s.wh.Loading.Deposit(req)
	s.wh.metrics.observeStage(RequestSequenced)
	s.logger.Infof("Sequencer %s moves WorkRequest %d to the loading area", s.name, req.ID())
	s.finish()
	return nil
}

// Rescan restarts checking from the first position. Pallets are untouched.
func (s *Sequencer) Rescan() error {
	if err := s.checkActive("rescan"); err != nil {
		return err
	}
	s.progress = 0
	s.logger.Infof("Sequencer %s rescans, checking from the beginning", s.name)
	return nil
}
