package sim

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Truck is a vehicle at the loading dock. Pallets go onto its bed in slot order.
// Accessors are meant for inspection once loading has stopped.
type Truck struct {
	id     int
	bed    []*Pallet
	cursor int
	frozen bool
}

func (t *Truck) ID() int       { return t.id }
func (t *Truck) Cursor() int   { return t.cursor }
func (t *Truck) Capacity() int { return len(t.bed) }
func (t *Truck) Frozen() bool  { return t.frozen }

// Bed returns the pallets loaded so far, in loading order.
func (t *Truck) Bed() []*Pallet {
	out := make([]*Pallet, t.cursor)
	copy(out, t.bed[:t.cursor])
	return out
}

// TruckLoader tracks every truck that has been at the dock. Only the most
// recently spawned truck can be loaded.
type TruckLoader struct {
	logger  logrus.FieldLogger
	metrics *Metrics
	bedSize int

	mu           sync.Mutex
	trucks       []*Truck
	loadedBefore int // work requests loaded on frozen trucks
}

// NewTruckLoader creates a loader with its first truck already at the dock.
func NewTruckLoader(cfg TruckConfig, logger logrus.FieldLogger, metrics *Metrics) *TruckLoader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	tl := &TruckLoader{
		logger:  logger.WithField("component", "trucks"),
		metrics: metrics,
		bedSize: cfg.BedSize,
	}
	tl.trucks = append(tl.trucks, &Truck{id: 0, bed: make([]*Pallet, cfg.BedSize)})
	return tl
}

func (tl *TruckLoader) active() *Truck {
	return tl.trucks[len(tl.trucks)-1]
}

// SpawnTruck freezes the active truck and brings in a new one.
func (tl *TruckLoader) SpawnTruck() *Truck {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	prev := tl.active()
	prev.frozen = true
	tl.loadedBefore += prev.cursor / 2
	t := &Truck{id: len(tl.trucks), bed: make([]*Pallet, tl.bedSize)}
	tl.trucks = append(tl.trucks, t)
	tl.metrics.observeTruck()
	tl.logger.Infof("Truck %d arrives, truck %d leaves with %d pallets", t.id, prev.id, prev.cursor)
	return t
}

// LoadActive puts a copy of p in the next slot of the active truck.
func (tl *TruckLoader) LoadActive(p *Pallet) error {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.loadActive(p)
}

// loadActive is LoadActive with tl.mu held.
func (tl *TruckLoader) loadActive(p *Pallet) error {
	t := tl.active()
	if t.cursor >= len(t.bed) {
		return fmt.Errorf("%w: truck %d holds %d pallets", ErrTruckFull, t.id, len(t.bed))
	}
	t.bed[t.cursor] = p.Clone()
	t.cursor++
	return nil
}

// LoadRequest loads the rear pallet and then the front pallet of req onto the
// active truck. Either both go on or neither does.
func (tl *TruckLoader) LoadRequest(req *WorkRequest) (truckID int, err error) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	t := tl.active()
	if len(t.bed)-t.cursor < 2 {
		return t.id, fmt.Errorf("%w: truck %d has %d free slots, WorkRequest %d needs 2",
			ErrTruckFull, t.id, len(t.bed)-t.cursor, req.ID())
	}
	for _, p := range []*Pallet{req.RearPallet(), req.FrontPallet()} {
		if err := tl.loadActive(p); err != nil {
			return t.id, err
		}
	}
	return t.id, nil
}

// HasRoom reports whether the active truck can take n more pallets.
func (tl *TruckLoader) HasRoom(n int) bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	t := tl.active()
	return len(t.bed)-t.cursor >= n
}

// ActiveTruckID returns the id of the truck currently being loaded.
func (tl *TruckLoader) ActiveTruckID() int {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.active().id
}

// NextExpectedID returns the WorkRequest id whose turn it is to be loaded.
// Each request takes two slots, so on the first truck this is cursor/2;
// later trucks continue the count where the frozen ones left off.
func (tl *TruckLoader) NextExpectedID() int {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.loadedBefore + tl.active().cursor/2
}

// Trucks returns every truck in arrival order.
func (tl *TruckLoader) Trucks() []*Truck {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	out := make([]*Truck, len(tl.trucks))
	copy(out, tl.trucks)
	return out
}
