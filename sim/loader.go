package sim

import (
	"fmt"

	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

// Loader checks sequenced pallets and loads them onto the active truck.
// Requests are loaded in strictly increasing id order.
type Loader struct {
	baseWorker
}

func newLoader(wh *Warehouse, name string) *Loader {
	return &Loader{baseWorker: newBaseWorker(wh, RoleLoader, name)}
}

// Receive takes the request whose turn it is from the loading area. Any other
// request waiting there is left alone.
func (l *Loader) Receive() error {
	if err := l.checkReady(); err != nil {
		return err
	}
	trucks := l.wh.Trucks
	full := !trucks.HasRoom(2)
	if full && !l.wh.cfg.Trucks.AutoSpawn {
		return l.reject("receive", fmt.Errorf("%w: truck %d cannot take another WorkRequest",
			ErrTruckFull, trucks.ActiveTruckID()))
	}

	// Spawning carries the id count over, so the expected id is the same
	// before and after a new truck arrives.
	id := trucks.NextExpectedID()
	req, ok := l.wh.Loading.WithdrawByID(id)
	if !ok {
		if l.wh.Loading.Len() == 0 {
			return l.reject("receive", fmt.Errorf("%w: no work requests in the loading area", ErrNoWork))
		}
		return l.reject("receive", fmt.Errorf("%w: %s cannot load yet, waiting for WorkRequest %d to arrive first",
			ErrNoWork, l.name, id))
	}
	if full {
		trucks.SpawnTruck()
	}
	l.begin(req)
	l.logger.Infof("Loader %s received sequenced pallets of WorkRequest %d", l.name, req.ID())
	return nil
}

// Act checks that sku sits in its slot on the expected pallet. tok.Side, when
// given, must name the pallet the current position belongs to.
func (l *Loader) Act(tok Token) error {
	if err := l.checkActive("act"); err != nil {
		return err
	}
	req := l.active
	sku := tok.Value
	want, side, ok := req.Expected(l.progress)
	if !ok {
		return l.reject("act", fmt.Errorf("%w: every item of WorkRequest %d is already checked",
			ErrPalletFull, req.ID()))
	}
	if tok.Side != SideNone && tok.Side != side {
		return l.reject("act", fmt.Errorf("%w: next check is on the %s pallet, not the %s pallet",
			ErrMismatch, side, tok.Side))
	}
	if sku != want {
		return l.reject("act", fmt.Errorf("%w: %s is not the next SKU to check; check %s next",
			ErrMismatch, sku, want))
	}
	slot := l.progress / 2
	if got := req.Pallet(side).ItemAt(slot); got != sku {
		return l.reject("act", fmt.Errorf("%w: %s is sequenced incorrectly, %s pallet slot %d holds %q",
			ErrMismatch, sku, side, slot, got))
	}
	l.progress++
	l.logger.Infof("%s is sequenced correctly", sku)
	return nil
}

// Push loads the rear pallet and then the front pallet onto the active truck.
func (l *Loader) Push() error {
	if err := l.checkActive("push"); err != nil {
		return err
	}
	req := l.active
	if l.progress < itemsPerRequest {
		l.logger.Warnf("Loader %s loads WorkRequest %d with %d of %d items checked",
			l.name, req.ID(), l.progress, itemsPerRequest)
	}
	truckID, err := l.wh.Trucks.LoadRequest(req)
	if err != nil {
		return l.reject("push", err)
	}
	req.mark(RequestLoaded)
	l.wh.metrics.observeStage(RequestLoaded)
	l.wh.trace.RecordLoad(trace.LoadRecord{
		Clock:     l.wh.Clock(),
		Worker:    l.name,
		RequestID: req.ID(),
		TruckID:   truckID,
	})
	l.logger.Infof("Loader %s loads WorkRequest %d onto truck %d", l.name, req.ID(), truckID)
	l.finish()
	return nil
}

// Rescan restarts checking from the first position.
func (l *Loader) Rescan() error {
	if err := l.checkActive("rescan"); err != nil {
		return err
	}
	l.progress = 0
	l.logger.Infof("Loader %s rescans, checking from the beginning", l.name)
	return nil
}
