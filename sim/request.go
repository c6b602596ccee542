// Defines Order and WorkRequest, the units of work that move through the pipeline.
// A WorkRequest batches BatchSize orders and carries the pallets they are picked,
// sequenced and loaded on.

package sim

import (
	"fmt"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderCreated   OrderStatus = "created"
	OrderPurgatory OrderStatus = "purgatory"
	OrderPicked    OrderStatus = "picked"
	OrderSequenced OrderStatus = "sequenced"
	OrderLoaded    OrderStatus = "loaded"
)

// RequestStatus represents the lifecycle state of a WorkRequest.
type RequestStatus string

const (
	RequestCreated   RequestStatus = "created"
	RequestPicked    RequestStatus = "picked"
	RequestSequenced RequestStatus = "sequenced"
	RequestLoaded    RequestStatus = "loaded"
)

// Side selects one of the two organized pallets.
type Side string

const (
	SideNone  Side = ""
	SideFront Side = "front"
	SideRear  Side = "rear"
)

// ParseSide converts "front"/"rear" (or "") into a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideNone, SideFront, SideRear:
		return Side(s), nil
	}
	return SideNone, fmt.Errorf("%w: pallet side %q", ErrMismatch, s)
}

// sideFor maps a sequencing/loading progress value onto its pallet:
// even progress is the front pallet, odd progress the rear one.
func sideFor(progress int) Side {
	if progress%2 == 0 {
		return SideFront
	}
	return SideRear
}

// ItemPair is the front and rear SKU making up one order.
type ItemPair struct {
	Front string
	Rear  string
}

// Get returns the SKU for the given side.
func (p ItemPair) Get(side Side) string {
	if side == SideRear {
		return p.Rear
	}
	return p.Front
}

// Order is a single customer order. Its items never change once created.
type Order struct {
	id     int
	items  ItemPair
	status OrderStatus
}

// NewOrder creates an order in the created state.
func NewOrder(id int, items ItemPair) *Order {
	return &Order{id: id, items: items, status: OrderCreated}
}

func (o *Order) ID() int                 { return o.id }
func (o *Order) Items() ItemPair         { return o.items }
func (o *Order) Status() OrderStatus     { return o.status }
func (o *Order) setStatus(s OrderStatus) { o.status = s }

// String renders the order the way the loaded-orders report lists it.
func (o *Order) String() string {
	return fmt.Sprintf("Order # %d Status: %s Contains: %s and %s", o.id, o.status, o.items.Front, o.items.Rear)
}

// WorkRequest is a batch of BatchSize orders processed together.
// Member order i must end up at position i of both organized pallets.
//
// A WorkRequest is owned by at most one worker at a time; handoff happens
// through the Batcher and staging areas, which serialize access.
type WorkRequest struct {
	id     int
	orders []*Order
	status RequestStatus

	raw   *Pallet // unordered, filled by the picker
	front *Pallet // organized, filled by the sequencer
	rear  *Pallet

	route []Location // memoized picking route, nil until first planned
}

// NewWorkRequest builds a WorkRequest over exactly BatchSize orders, keeping their order.
func NewWorkRequest(id int, orders []*Order) (*WorkRequest, error) {
	if len(orders) != BatchSize {
		return nil, fmt.Errorf("work request %d needs %d orders, got %d", id, BatchSize, len(orders))
	}
	members := make([]*Order, len(orders))
	copy(members, orders)
	return &WorkRequest{
		id:     id,
		orders: members,
		status: RequestCreated,
		raw:    NewPallet(RawPalletCapacity),
		front:  NewPallet(OrganizedPalletCapacity),
		rear:   NewPallet(OrganizedPalletCapacity),
	}, nil
}

func (r *WorkRequest) ID() int               { return r.id }
func (r *WorkRequest) Status() RequestStatus { return r.status }
func (r *WorkRequest) RawPallet() *Pallet    { return r.raw }
func (r *WorkRequest) FrontPallet() *Pallet  { return r.front }
func (r *WorkRequest) RearPallet() *Pallet   { return r.rear }

// Orders returns the member orders in batch order.
func (r *WorkRequest) Orders() []*Order {
	out := make([]*Order, len(r.orders))
	copy(out, r.orders)
	return out
}

// Pallet returns the organized pallet for side.
func (r *WorkRequest) Pallet(side Side) *Pallet {
	if side == SideRear {
		return r.rear
	}
	return r.front
}

// Items returns every SKU in the request, front then rear for each order.
func (r *WorkRequest) Items() []string {
	items := make([]string, 0, itemsPerRequest)
	for _, o := range r.orders {
		items = append(items, o.items.Front, o.items.Rear)
	}
	return items
}

// Expected returns the SKU and pallet side for a sequencing/loading position.
// ok is false once every item has been handled.
func (r *WorkRequest) Expected(progress int) (sku string, side Side, ok bool) {
	if progress < 0 || progress >= itemsPerRequest {
		return "", SideNone, false
	}
	side = sideFor(progress)
	return r.orders[progress/2].items.Get(side), side, true
}

// Route returns the picking route, planning it on first use only.
func (r *WorkRequest) Route(inv *Inventory) ([]Location, error) {
	if r.route == nil {
		route, err := PlanRoute(r.Items(), inv)
		if err != nil {
			return nil, err
		}
		r.route = route
	}
	return r.route, nil
}

// HasRoute reports whether a route has been memoized.
func (r *WorkRequest) HasRoute() bool { return r.route != nil }

// Void throws out everything placed on the request's pallets and rewinds
// the request and its orders to created so they can be picked again.
// The memoized route survives.
func (r *WorkRequest) Void() {
	r.raw.Clear()
	r.front.Clear()
	r.rear.Clear()
	r.status = RequestCreated
	for _, o := range r.orders {
		o.setStatus(OrderCreated)
	}
}

// mark moves the request and all of its orders to the given stage.
func (r *WorkRequest) mark(status RequestStatus) {
	r.status = status
	for _, o := range r.orders {
		o.setStatus(OrderStatus(status))
	}
}

// This method returns a human-readable string representation of a WorkRequest.
func (r *WorkRequest) String() string {
	return fmt.Sprintf("WorkRequest: (ID: %d, Status: %s, Raw: %v, Front: %v, Rear: %v)",
		r.id, r.status, r.raw, r.front, r.rear)
}
