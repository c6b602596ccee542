package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

// Role is the fixed job of a worker.
type Role string

const (
	RolePicker      Role = "Picker"
	RoleSequencer   Role = "Sequencer"
	RoleLoader      Role = "Loader"
	RoleReplenisher Role = "Replenisher"
)

// ParseRole converts a role name as written in instruction scripts.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RolePicker, RoleSequencer, RoleLoader, RoleReplenisher:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Token is what a worker presents to Act: a SKU for pickers, sequencers and
// loaders, a location key for replenishers. Side optionally names the
// organized pallet a loader is checking.
type Token struct {
	Value string
	Side  Side
}

// Worker is the receive/act/push protocol shared by every role.
//
//   - Receive pulls the next unit of work from the role's upstream source.
//     It only takes effect when the worker is ready.
//   - Act validates one token against the next expected unit and, on a match,
//     performs the role's side effect and advances progress.
//   - Push hands the finished unit to the next stage and makes the worker ready.
//     Completion is not enforced; the driver decides when to push.
//   - Rescan rewinds progress without touching pallet contents.
//
// A rejected call returns an error (see Classify) and leaves state unchanged,
// except for a sequencer rework which returns ErrReworked.
type Worker interface {
	Name() string
	Role() Role
	Ready() bool
	Progress() int
	Active() *WorkRequest

	Receive() error
	Act(tok Token) error
	Push() error
	Rescan() error
}

// baseWorker carries the state every role has in common.
type baseWorker struct {
	name     string
	role     Role
	ready    bool
	active   *WorkRequest
	progress int

	wh     *Warehouse
	logger logrus.FieldLogger
}

func newBaseWorker(wh *Warehouse, role Role, name string) baseWorker {
	return baseWorker{
		name:   name,
		role:   role,
		ready:  true,
		wh:     wh,
		logger: wh.logger.WithFields(logrus.Fields{"worker": name, "role": string(role)}),
	}
}

func (w *baseWorker) Name() string         { return w.name }
func (w *baseWorker) Role() Role           { return w.role }
func (w *baseWorker) Ready() bool          { return w.ready }
func (w *baseWorker) Progress() int        { return w.progress }
func (w *baseWorker) Active() *WorkRequest { return w.active }

// Rescan is unsupported unless a role overrides it.
func (w *baseWorker) Rescan() error {
	return w.reject("rescan", fmt.Errorf("%w: %s %s has nothing to rescan", ErrUnsupported, w.role, w.name))
}

// begin takes ownership of req and marks the worker busy.
func (w *baseWorker) begin(req *WorkRequest) {
	w.active = req
	w.ready = false
	w.progress = 0
}

// finish releases the active request and marks the worker ready.
func (w *baseWorker) finish() {
	w.active = nil
	w.ready = true
	w.progress = 0
}

// checkReady rejects Receive on a busy worker.
func (w *baseWorker) checkReady() error {
	if w.ready {
		return nil
	}
	return w.reject("receive", fmt.Errorf("%w: %s %s is already working", ErrBusy, w.role, w.name))
}

// checkActive rejects op on a worker with nothing in hand.
func (w *baseWorker) checkActive(op string) error {
	if w.active != nil {
		return nil
	}
	return w.reject(op, fmt.Errorf("%w: %s %s", ErrIdle, w.role, w.name))
}

// reject reports err to the diagnostics sinks and returns it unchanged.
func (w *baseWorker) reject(op string, err error) error {
	class := Classify(err)
	switch class {
	case ClassUnavailable, ClassUnsupported:
		w.logger.Info(err.Error())
	default:
		w.logger.Warn(err.Error())
	}
	w.wh.metrics.observeRejection(w.role, err)
	w.wh.trace.RecordRejection(trace.RejectionRecord{
		Clock:  w.wh.Clock(),
		Worker: w.name,
		Role:   string(w.role),
		Op:     op,
		Class:  string(class),
		Reason: err.Error(),
	})
	return err
}
