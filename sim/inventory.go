package sim

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Location addresses a pick face by its four positional fields.
type Location struct {
	Zone  string
	Aisle string
	Rack  string
	Level string
}

// Key is the concatenated form used in instruction scripts and lookups, e.g. "A010".
func (l Location) Key() string {
	return l.Zone + l.Aisle + l.Rack + l.Level
}

func (l Location) String() string { return l.Key() }

// Fields returns the four positional fields in table order.
func (l Location) Fields() []string {
	return []string{l.Zone, l.Aisle, l.Rack, l.Level}
}

// PickFace is the stock record of a single storage location.
type PickFace struct {
	mu       sync.Mutex
	location Location
	sku      string
	stock    int
}

func (f *PickFace) Location() Location { return f.location }
func (f *PickFace) SKU() string        { return f.sku }

// Stock returns the current stock count.
func (f *PickFace) Stock() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock
}

// StockLevel is a point-in-time view of one pick face.
type StockLevel struct {
	Location Location
	SKU      string
	Stock    int
}

// Inventory owns every pick face and the replenishment queue.
//
// Lock order: a face's mutex may be held while taking queueMu, never the
// reverse. facesMu only guards the lookup maps and is never held while
// taking another lock.
type Inventory struct {
	cfg     StockConfig
	logger  logrus.FieldLogger
	metrics *Metrics

	facesMu sync.RWMutex
	faces   map[string]*PickFace // location key -> face
	bySKU   map[string]*PickFace

	queueMu sync.Mutex
	queue   []*PickFace     // faces waiting for a replenisher, oldest first
	pending map[string]bool // location keys queued and not yet replenished
}

// NewInventory creates an empty inventory. Faces are added with AddFace.
func NewInventory(cfg StockConfig, logger logrus.FieldLogger, metrics *Metrics) *Inventory {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Inventory{
		cfg:     cfg,
		logger:  logger.WithField("component", "inventory"),
		metrics: metrics,
		faces:   make(map[string]*PickFace),
		bySKU:   make(map[string]*PickFace),
		pending: make(map[string]bool),
	}
}

// AddFace registers a location holding sku at the nominal full stock level.
// Each location and each SKU may appear only once.
func (inv *Inventory) AddFace(loc Location, sku string) error {
	inv.facesMu.Lock()
	defer inv.facesMu.Unlock()
	if _, ok := inv.faces[loc.Key()]; ok {
		return fmt.Errorf("%w: duplicate location %s", ErrConfig, loc)
	}
	if other, ok := inv.bySKU[sku]; ok {
		return fmt.Errorf("%w: sku %s already stored at %s", ErrConfig, sku, other.location)
	}
	face := &PickFace{location: loc, sku: sku, stock: inv.cfg.Full}
	inv.faces[loc.Key()] = face
	inv.bySKU[sku] = face
	return nil
}

// SetStock overrides the stock count of a location. Used for initial stock levels.
func (inv *Inventory) SetStock(key string, qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: negative stock %d for %s", ErrConfig, qty, key)
	}
	face, err := inv.Face(key)
	if err != nil {
		return err
	}
	face.mu.Lock()
	face.stock = qty
	face.mu.Unlock()
	return nil
}

// Face looks up the pick face at a location key.
func (inv *Inventory) Face(key string) (*PickFace, error) {
	inv.facesMu.RLock()
	defer inv.facesMu.RUnlock()
	face, ok := inv.faces[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocation, key)
	}
	return face, nil
}

// LocationOf returns where sku is stored.
func (inv *Inventory) LocationOf(sku string) (Location, error) {
	inv.facesMu.RLock()
	defer inv.facesMu.RUnlock()
	face, ok := inv.bySKU[sku]
	if !ok {
		return Location{}, fmt.Errorf("%w: %s", ErrUnknownSKU, sku)
	}
	return face.location, nil
}

// Stock returns the stock count at a location key.
func (inv *Inventory) Stock(key string) (int, error) {
	face, err := inv.Face(key)
	if err != nil {
		return 0, err
	}
	return face.Stock(), nil
}

// Pick removes one item from a location. Picking an empty face is rejected
// without changing anything. A successful pick that leaves the face at or
// below the replenish threshold queues it, unless it is already queued.
func (inv *Inventory) Pick(key string) error {
	face, err := inv.Face(key)
	if err != nil {
		return err
	}

	face.mu.Lock()
	defer face.mu.Unlock()
	if face.stock <= 0 {
		inv.logger.Warnf("cannot pick %s from %s, inventory is 0", face.sku, key)
		inv.metrics.observeUnderflow()
		return fmt.Errorf("%w: %s", ErrOutOfStock, key)
	}
	face.stock--
	if face.stock <= inv.cfg.ReplenishThreshold {
		inv.requestReplenish(face)
	}
	return nil
}

// requestReplenish queues face once until it is replenished. Caller holds face.mu.
func (inv *Inventory) requestReplenish(face *PickFace) {
	inv.queueMu.Lock()
	defer inv.queueMu.Unlock()
	key := face.location.Key()
	if inv.pending[key] {
		return
	}
	inv.pending[key] = true
	inv.queue = append(inv.queue, face)
	inv.metrics.observeReplenishRequest()
	inv.logger.Infof("SKU %s at %s needs to be replenished, %d items remaining", face.sku, key, face.stock)
}

// PutBack returns one item to a location, undoing an erroneous pick.
func (inv *Inventory) PutBack(key string) error {
	face, err := inv.Face(key)
	if err != nil {
		return err
	}
	face.mu.Lock()
	face.stock++
	face.mu.Unlock()
	return nil
}

// Replenish restocks a location. A low face gets ReplenishAmount more items;
// a face above the threshold is reset to the nominal full level instead of
// being stacked past it. Returns the new stock count.
func (inv *Inventory) Replenish(key string) (int, error) {
	face, err := inv.Face(key)
	if err != nil {
		return 0, err
	}

	face.mu.Lock()
	defer face.mu.Unlock()
	if face.stock <= inv.cfg.ReplenishThreshold {
		face.stock += inv.cfg.ReplenishAmount
	} else {
		face.stock = inv.cfg.Full
	}

	inv.queueMu.Lock()
	delete(inv.pending, key)
	inv.queueMu.Unlock()

	inv.metrics.observeReplenished()
	inv.logger.Infof("SKU %s replenished, current stock at %d", face.sku, face.stock)
	return face.stock, nil
}

// NextReplenishment pops the oldest face waiting for replenishment.
// The face stays marked pending until Replenish is called for it.
func (inv *Inventory) NextReplenishment() (*PickFace, error) {
	inv.queueMu.Lock()
	defer inv.queueMu.Unlock()
	if len(inv.queue) == 0 {
		return nil, ErrEmptyQueue
	}
	face := inv.queue[0]
	inv.queue = inv.queue[1:]
	return face, nil
}

// PendingReplenishments returns the number of faces waiting in the queue.
func (inv *Inventory) PendingReplenishments() int {
	inv.queueMu.Lock()
	defer inv.queueMu.Unlock()
	return len(inv.queue)
}

// Levels returns a snapshot of every face sorted by location key.
func (inv *Inventory) Levels() []StockLevel {
	inv.facesMu.RLock()
	faces := make([]*PickFace, 0, len(inv.faces))
	for _, f := range inv.faces {
		faces = append(faces, f)
	}
	inv.facesMu.RUnlock()

	sort.Slice(faces, func(i, j int) bool {
		return faces[i].location.Key() < faces[j].location.Key()
	})
	levels := make([]StockLevel, len(faces))
	for i, f := range faces {
		levels[i] = StockLevel{Location: f.location, SKU: f.sku, Stock: f.Stock()}
	}
	return levels
}

// NonNominal returns the faces whose stock differs from the full level.
func (inv *Inventory) NonNominal() []StockLevel {
	var out []StockLevel
	for _, l := range inv.Levels() {
		if l.Stock != inv.cfg.Full {
			out = append(out, l)
		}
	}
	return out
}

// Len returns the number of pick faces.
func (inv *Inventory) Len() int {
	inv.facesMu.RLock()
	defer inv.facesMu.RUnlock()
	return len(inv.faces)
}
