package sim

import (
	"fmt"
	"sort"
	"sync"
)

// Roster holds every worker hired into a warehouse, keyed by name.
type Roster struct {
	wh *Warehouse

	mu      sync.Mutex
	workers map[string]Worker
}

func newRoster(wh *Warehouse) *Roster {
	return &Roster{wh: wh, workers: make(map[string]Worker)}
}

// Hire returns the worker called name, creating it with role on first mention.
// A name already hired under a different role is rejected.
func (r *Roster) Hire(role Role, name string) (Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.workers[name]; ok {
		if w.Role() != role {
			return nil, fmt.Errorf("%w: %s is a %s, not a %s", ErrRoleConflict, name, w.Role(), role)
		}
		return w, nil
	}

	var w Worker
	switch role {
	case RolePicker:
		w = newPicker(r.wh, name)
	case RoleSequencer:
		w = newSequencer(r.wh, name)
	case RoleLoader:
		w = newLoader(r.wh, name)
	case RoleReplenisher:
		w = newReplenisher(r.wh, name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	r.workers[name] = w
	r.wh.logger.Infof("%s %s is ready", role, name)
	return w, nil
}

// Get returns a previously hired worker.
func (r *Roster) Get(name string) (Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWorker, name)
	}
	return w, nil
}

// Names returns the names of all hired workers in sorted order.
func (r *Roster) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.workers))
	for name := range r.workers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of hired workers.
func (r *Roster) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workers)
}
