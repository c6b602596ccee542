// Tracks pipeline-wide counters such as orders batched, items picked,
// rejections per role and reworks, exposed as Prometheus collectors.

package sim

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics aggregates statistics about the simulation for final reporting.
// Each Metrics owns a private registry so that several warehouses can run in
// one process (tests do this). All observe methods are safe on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	OrdersSubmitted     prometheus.Counter
	WorkRequestsCreated prometheus.Counter
	ItemsPicked         prometheus.Counter
	ItemsSequenced      prometheus.Counter
	WorkRequestsLoaded  prometheus.Counter
	Reworks             prometheus.Counter
	StockUnderflows     prometheus.Counter
	ReplenishRequests   prometheus.Counter
	Replenishments      prometheus.Counter
	TrucksSpawned       prometheus.Counter
	Rejections          *prometheus.CounterVec // labels: role, class
	StageTransitions    *prometheus.CounterVec // labels: stage
}

// NewMetrics creates the collectors under the given namespace and registers them.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "warehouse"
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	m := &Metrics{
		registry:            prometheus.NewRegistry(),
		OrdersSubmitted:     counter("orders_submitted_total", "Orders received by the batcher"),
		WorkRequestsCreated: counter("work_requests_created_total", "Work requests formed from full batches"),
		ItemsPicked:         counter("items_picked_total", "Items placed on raw pallets"),
		ItemsSequenced:      counter("items_sequenced_total", "Items placed on organized pallets"),
		WorkRequestsLoaded:  counter("work_requests_loaded_total", "Work requests loaded onto trucks"),
		Reworks:             counter("reworks_total", "Work requests voided and returned to picking"),
		StockUnderflows:     counter("stock_underflows_total", "Picks rejected against an empty pick face"),
		ReplenishRequests:   counter("replenish_requests_total", "Pick faces queued for replenishment"),
		Replenishments:      counter("replenishments_total", "Pick faces replenished"),
		TrucksSpawned:       counter("trucks_spawned_total", "Trucks brought in after the first"),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Worker operations rejected, by role and error class",
		}, []string{"role", "class"}),
		StageTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_transitions_total",
			Help:      "Work requests pushed forward, by the stage they reached",
		}, []string{"stage"}),
	}
	m.registry.MustRegister(
		m.OrdersSubmitted, m.WorkRequestsCreated, m.ItemsPicked, m.ItemsSequenced,
		m.WorkRequestsLoaded, m.Reworks, m.StockUnderflows, m.ReplenishRequests,
		m.Replenishments, m.TrucksSpawned, m.Rejections, m.StageTransitions,
	)
	return m
}

// Registry exposes the registry for scraping or inspection.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeOrder() {
	if m != nil {
		m.OrdersSubmitted.Inc()
	}
}

func (m *Metrics) observeWorkRequest() {
	if m != nil {
		m.WorkRequestsCreated.Inc()
	}
}

func (m *Metrics) observePick() {
	if m != nil {
		m.ItemsPicked.Inc()
	}
}

func (m *Metrics) observeSequenced() {
	if m != nil {
		m.ItemsSequenced.Inc()
	}
}

func (m *Metrics) observeRework() {
	if m != nil {
		m.Reworks.Inc()
	}
}

func (m *Metrics) observeUnderflow() {
	if m != nil {
		m.StockUnderflows.Inc()
	}
}

func (m *Metrics) observeReplenishRequest() {
	if m != nil {
		m.ReplenishRequests.Inc()
	}
}

func (m *Metrics) observeReplenished() {
	if m != nil {
		m.Replenishments.Inc()
	}
}

func (m *Metrics) observeTruck() {
	if m != nil {
		m.TrucksSpawned.Inc()
	}
}

func (m *Metrics) observeStage(status RequestStatus) {
	if m == nil {
		return
	}
	m.StageTransitions.WithLabelValues(string(status)).Inc()
	if status == RequestLoaded {
		m.WorkRequestsLoaded.Inc()
	}
}

func (m *Metrics) observeRejection(role Role, err error) {
	if m == nil || err == nil {
		return
	}
	m.Rejections.WithLabelValues(string(role), string(Classify(err))).Inc()
}

// Print writes the end-of-run summary.
func (m *Metrics) Print(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	if _, err := fmt.Fprintln(w, "=== Simulation Metrics ==="); err != nil {
		return err
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			label := ""
			for _, lp := range metric.GetLabel() {
				label += fmt.Sprintf("%s=%s ", lp.GetName(), lp.GetValue())
			}
			if _, err := fmt.Fprintf(w, "%-45s %s: %.0f\n", mf.GetName(), label, metric.GetCounter().GetValue()); err != nil {
				return err
			}
		}
	}
	return nil
}
