// Package report produces the end-of-run reports: the stock levels that
// differ from full, and the orders that made it onto a truck.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/warehouse-sim/warehouse-sim/sim"
)

// Report file names written by WriteCSV.
const (
	StockFile  = "final.csv"
	OrdersFile = "orders.csv"
)

// Report is a snapshot of a finished run.
type Report struct {
	Stock  []sim.StockLevel
	Orders []*sim.Order
}

// Build snapshots wh. Only non-full pick faces and loaded orders are kept.
func Build(wh *sim.Warehouse) *Report {
	return &Report{
		Stock:  wh.Inventory.NonNominal(),
		Orders: LoadedOrders(wh.Batcher.Archive()),
	}
}

// StockRows renders every non-full pick face of inv as zone,aisle,rack,level,qty.
func StockRows(inv *sim.Inventory) [][]string {
	return stockRows(inv.NonNominal())
}

func stockRows(levels []sim.StockLevel) [][]string {
	rows := make([][]string, 0, len(levels))
	for _, l := range levels {
		rows = append(rows, append(l.Location.Fields(), strconv.Itoa(l.Stock)))
	}
	return rows
}

// LoadedOrders filters archive down to loaded orders, keeping batch order.
func LoadedOrders(archive []*sim.Order) []*sim.Order {
	var out []*sim.Order
	for _, o := range archive {
		if o.Status() == sim.OrderLoaded {
			out = append(out, o)
		}
	}
	return out
}

// WriteCSV writes StockFile and OrdersFile into dir, replacing existing files.
func (r *Report) WriteCSV(dir string) error {
	if err := writeCSV(filepath.Join(dir, StockFile), stockRows(r.Stock)); err != nil {
		return err
	}
	logrus.Infof("Generated report: %s", StockFile)

	rows := make([][]string, 0, len(r.Orders))
	for _, o := range r.Orders {
		rows = append(rows, []string{o.String()})
	}
	if err := writeCSV(filepath.Join(dir, OrdersFile), rows); err != nil {
		return err
	}
	logrus.Infof("Generated report: %s", OrdersFile)
	return nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
