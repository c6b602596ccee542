package sim

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Catalog translates a color/model combination into the SKUs of its front and rear fascia.
type Catalog map[string]ItemPair

func catalogKey(color, model string) string { return color + model }

// Add registers the SKU pair for color/model, replacing any previous entry.
func (c Catalog) Add(color, model string, pair ItemPair) {
	c[catalogKey(color, model)] = pair
}

// Lookup returns the SKU pair for color/model.
func (c Catalog) Lookup(color, model string) (ItemPair, error) {
	pair, ok := c[catalogKey(color, model)]
	if !ok {
		return ItemPair{}, fmt.Errorf("%w: color %q model %q", ErrUnknownProduct, color, model)
	}
	return pair, nil
}

// Batcher groups incoming orders into WorkRequests of BatchSize and keeps the
// queue of requests waiting for a picker.
type Batcher struct {
	logger  logrus.FieldLogger
	metrics *Metrics
	catalog Catalog

	mu            sync.Mutex
	pending       []*Order // at most BatchSize-1 between flushes
	archive       []*Order
	nextOrderID   int
	nextRequestID int

	available RequestQueue
}

// NewBatcher creates an empty batcher. catalog may be nil when orders are
// only ever submitted as SKU pairs.
func NewBatcher(catalog Catalog, logger logrus.FieldLogger, metrics *Metrics) *Batcher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if catalog == nil {
		catalog = Catalog{}
	}
	return &Batcher{
		logger:  logger.WithField("component", "batcher"),
		metrics: metrics,
		catalog: catalog,
	}
}

// Submit records a new order. When it completes a batch, a WorkRequest is
// created over the pending orders in submission order and queued for picking,
// and the orders move to the archive with their status unchanged.
func (b *Batcher) Submit(items ItemPair) *Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	order := NewOrder(b.nextOrderID, items)
	b.nextOrderID++
	b.pending = append(b.pending, order)
	b.metrics.observeOrder()
	b.logger.Infof("Order #%d created", order.ID())

	if len(b.pending) == BatchSize {
		// len(pending) == BatchSize, so this cannot fail.
		req, _ := NewWorkRequest(b.nextRequestID, b.pending)
		b.nextRequestID++
		b.archive = append(b.archive, b.pending...)
		b.pending = nil
		b.available.Enqueue(req)
		b.metrics.observeWorkRequest()
		b.logger.Infof("Generated WorkRequest %d", req.ID())
	}
	return order
}

// SubmitColorModel translates color/model through the catalog and submits the order.
func (b *Batcher) SubmitColorModel(color, model string) (*Order, error) {
	pair, err := b.catalog.Lookup(color, model)
	if err != nil {
		b.logger.Warnf("rejecting order: %v", err)
		return nil, err
	}
	return b.Submit(pair), nil
}

// Next removes the oldest waiting WorkRequest.
func (b *Batcher) Next() (*WorkRequest, bool) {
	return b.available.Dequeue()
}

// Return puts a voided WorkRequest back at the front of the picking queue.
func (b *Batcher) Return(req *WorkRequest) {
	b.available.PrependFront(req)
	b.logger.Infof("WorkRequest %d returned to the front of the picking queue", req.ID())
}

// Available returns the number of WorkRequests waiting for a picker.
func (b *Batcher) Available() int {
	return b.available.Len()
}

// AvailableIDs returns the ids of waiting WorkRequests, next one first.
func (b *Batcher) AvailableIDs() []int {
	return b.available.IDs()
}

// Pending returns the number of orders waiting to complete a batch.
func (b *Batcher) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Archive returns every batched order in batch order.
func (b *Batcher) Archive() []*Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Order, len(b.archive))
	copy(out, b.archive)
	return out
}
