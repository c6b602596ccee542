// sim/simulator.go
package sim

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

// Warehouse owns one of each pipeline component and the clock that orders
// instructions. Workers reach the shared components through it.
type Warehouse struct {
	cfg Config

	Inventory  *Inventory
	Batcher    *Batcher
	Marshaling *MarshalingArea
	Loading    *LoadingArea
	Trucks     *TruckLoader
	Roster     *Roster

	logger  logrus.FieldLogger
	metrics *Metrics
	trace   *trace.SimulationTrace

	// clock counts executed instructions.
	clock atomic.Int64
}

// NewWarehouse builds an empty warehouse: no pick faces, no orders, no workers,
// and a single empty truck at the dock. logger may be nil (standard logger),
// metrics may be nil (a fresh registry is created) and tr may be nil (no trace).
func NewWarehouse(cfg Config, catalog Catalog, logger logrus.FieldLogger, metrics *Metrics, tr *trace.SimulationTrace) (*Warehouse, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if metrics == nil {
		metrics = NewMetrics("")
	}
	wh := &Warehouse{
		cfg:        cfg,
		Inventory:  NewInventory(cfg.Stock, logger, metrics),
		Batcher:    NewBatcher(catalog, logger, metrics),
		Marshaling: &MarshalingArea{},
		Loading:    NewLoadingArea(),
		Trucks:     NewTruckLoader(cfg.Trucks, logger, metrics),
		logger:     logger,
		metrics:    metrics,
		trace:      tr,
	}
	wh.Roster = newRoster(wh)
	return wh, nil
}

func (wh *Warehouse) Config() Config                { return wh.cfg }
func (wh *Warehouse) Metrics() *Metrics             { return wh.metrics }
func (wh *Warehouse) Trace() *trace.SimulationTrace { return wh.trace }

// Clock returns the number of instructions executed so far.
func (wh *Warehouse) Clock() int64 { return wh.clock.Load() }

// Run executes instrs in order. A rejected instruction is logged and the run
// moves on; only a configuration error or ctx cancellation stops it early.
func (wh *Warehouse) Run(ctx context.Context, instrs []Instruction) error {
	for i, in := range instrs {
		if err := ctx.Err(); err != nil {
			return err
		}
		tick := wh.clock.Add(1)
		wh.logger.Debugf("[step %05d] %s", tick, in)
		err := in.Execute(wh)
		if err == nil {
			continue
		}
		if IsFatal(err) {
			wh.logger.Errorf("[step %05d] aborting: %v", tick, err)
			return fmt.Errorf("instruction %d (%s): %w", i+1, in, err)
		}
		wh.logger.Debugf("[step %05d] rejected (%s): %v", tick, Classify(err), err)
	}
	wh.logger.Infof("[step %05d] Simulation ended", wh.Clock())
	return nil
}

// reject reports a failure that did not come from a worker.
func (wh *Warehouse) reject(worker string, role Role, op string, err error) error {
	class := Classify(err)
	wh.logger.Warn(err.Error())
	wh.metrics.observeRejection(role, err)
	wh.trace.RecordRejection(trace.RejectionRecord{
		Clock:  wh.Clock(),
		Worker: worker,
		Role:   string(role),
		Op:     op,
		Class:  string(class),
		Reason: err.Error(),
	})
	return err
}
