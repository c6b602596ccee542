package sim

import (
	"sort"
	"sync"
)

// MarshalingArea holds picked requests waiting for a sequencer, first in first out.
type MarshalingArea struct {
	queue RequestQueue
}

// Deposit adds a picked request to the back of the area.
func (a *MarshalingArea) Deposit(req *WorkRequest) { a.queue.Enqueue(req) }

// Withdraw removes the oldest request, if any.
func (a *MarshalingArea) Withdraw() (*WorkRequest, bool) { return a.queue.Dequeue() }

// Len returns the number of requests waiting.
func (a *MarshalingArea) Len() int { return a.queue.Len() }

// LoadingArea holds sequenced requests keyed by id. Loaders take the one
// whose turn it is, not the oldest.
type LoadingArea struct {
	mu       sync.Mutex
	requests map[int]*WorkRequest
}

// NewLoadingArea creates an empty loading area.
func NewLoadingArea() *LoadingArea {
	return &LoadingArea{requests: make(map[int]*WorkRequest)}
}

// Deposit adds a sequenced request.
func (a *LoadingArea) Deposit(req *WorkRequest) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests[req.ID()] = req
}

// WithdrawByID removes and returns the request with the given id.
// Callers can check Len to tell an empty area from a missing id.
func (a *LoadingArea) WithdrawByID(id int) (*WorkRequest, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	req, ok := a.requests[id]
	if ok {
		delete(a.requests, id)
	}
	return req, ok
}

// Len returns the number of requests waiting.
func (a *LoadingArea) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

// IDs returns the waiting request ids in ascending order.
func (a *LoadingArea) IDs() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]int, 0, len(a.requests))
	for id := range a.requests {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
