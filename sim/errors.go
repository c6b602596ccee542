package sim

import "errors"

// Unavailable: nothing to do right now, caller may retry later.
var (
	ErrNoWork     = errors.New("no work available")
	ErrEmptyQueue = errors.New("replenishment queue is empty")
	ErrTruckFull  = errors.New("active truck has no room")
	ErrOutOfStock = errors.New("pick face is out of stock")
	ErrIdle       = errors.New("worker has no active work request")
	ErrBusy       = errors.New("worker is busy")
)

// Mismatch: the presented token was wrong and nothing was mutated.
var (
	ErrMismatch        = errors.New("token does not match expected item")
	ErrUnknownSKU      = errors.New("unknown sku")
	ErrUnknownLocation = errors.New("unknown location")
	ErrPalletFull      = errors.New("pallet is full")
	ErrUnknownProduct  = errors.New("unknown color/model combination")
)

// ErrReworked reports that a work request was voided and returned to picking.
var ErrReworked = errors.New("work request sent back for re-picking")

// ErrConfig marks malformed or missing configuration input.
var ErrConfig = errors.New("invalid configuration")

var (
	ErrUnsupported   = errors.New("operation not supported for this role")
	ErrUnknownWorker = errors.New("unknown worker")
	ErrUnknownRole   = errors.New("unknown worker role")
	ErrRoleConflict  = errors.New("worker already hired under another role")
)

// ErrorClass groups errors by how the caller should react to them.
type ErrorClass string

const (
	ClassNone        ErrorClass = ""
	ClassUnavailable ErrorClass = "unavailable"
	ClassMismatch    ErrorClass = "mismatch"
	ClassIntegrity   ErrorClass = "integrity"
	ClassConfig      ErrorClass = "config"
	ClassUnsupported ErrorClass = "unsupported"
)

var errorClasses = []struct {
	class ErrorClass
	errs  []error
}{
	{ClassIntegrity, []error{ErrReworked}},
	{ClassConfig, []error{ErrConfig}},
	{ClassUnavailable, []error{ErrNoWork, ErrEmptyQueue, ErrTruckFull, ErrOutOfStock, ErrIdle, ErrBusy}},
	{ClassMismatch, []error{ErrMismatch, ErrUnknownSKU, ErrUnknownLocation, ErrPalletFull, ErrUnknownProduct}},
	{ClassUnsupported, []error{ErrUnsupported, ErrUnknownWorker, ErrUnknownRole, ErrRoleConflict}},
}

// Classify maps err onto its ErrorClass. Unrecognized non-nil errors are
// treated as configuration errors since the core never produces them.
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassNone
	}
	for _, c := range errorClasses {
		for _, target := range c.errs {
			if errors.Is(err, target) {
				return c.class
			}
		}
	}
	return ClassConfig
}

// IsFatal reports whether err should stop an instruction run.
func IsFatal(err error) bool {
	return Classify(err) == ClassConfig
}
