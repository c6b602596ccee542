// Package trace provides decision-trace recording for warehouse runs: every
// rejected worker operation, every rework and every truck load.
// This package has no dependencies on sim/: it stores pure data types.
package trace

// RejectionRecord captures a worker operation that was refused.
type RejectionRecord struct {
	Clock  int64
	Worker string
	Role   string
	Op     string // "receive", "act", "push" or "rescan"
	Class  string // error class, e.g. "mismatch"
	Reason string
}

// ReworkRecord captures a work request voided by a sequencer because an
// expected item was never actually picked.
type ReworkRecord struct {
	Clock     int64
	Worker    string
	RequestID int
	SKU       string
}

// LoadRecord captures a work request loaded onto a truck.
type LoadRecord struct {
	Clock     int64
	Worker    string
	RequestID int
	TruckID   int
}
