// Package layout loads the tabular warehouse description: the traversal
// table of pick faces, the initial stock overrides and the product catalog.
package layout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/warehouse-sim/warehouse-sim/sim"
)

// File names looked up by LoadDir.
const (
	TraversalFile   = "traversal_table.csv"
	InitialFile     = "initial.csv"
	TranslationFile = "translation.csv"
)

// RowError reports a malformed row. It matches sim.ErrConfig under errors.Is.
type RowError struct {
	File string
	Line int
	Err  error
}

func (e *RowError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s line %d: %v", e.File, e.Line, e.Err)
}

func (e *RowError) Unwrap() []error { return []error{sim.ErrConfig, e.Err} }

// Face is one row of the traversal table.
type Face struct {
	Location sim.Location
	SKU      string
}

// Stock is one row of the initial stock table.
type Stock struct {
	Location sim.Location
	Qty      int
}

// Layout is everything needed to stock an empty warehouse.
type Layout struct {
	Faces   []Face
	Stock   []Stock
	Catalog sim.Catalog
}

// LoadTraversalTable reads rows of zone,aisle,rack,level,sku. The table has no header.
func LoadTraversalTable(r io.Reader) ([]Face, error) {
	var faces []Face
	err := readRows(r, false, 5, func(row []string) error {
		if row[4] == "" {
			return errors.New("empty sku")
		}
		faces = append(faces, Face{Location: location(row), SKU: row[4]})
		return nil
	})
	return faces, err
}

// LoadInitialStock reads rows of zone,aisle,rack,level,qty after a header line.
func LoadInitialStock(r io.Reader) ([]Stock, error) {
	var stock []Stock
	err := readRows(r, true, 5, func(row []string) error {
		qty, err := strconv.Atoi(row[4])
		if err != nil {
			return fmt.Errorf("quantity %q: %w", row[4], err)
		}
		if qty < 0 {
			return fmt.Errorf("negative quantity %d", qty)
		}
		stock = append(stock, Stock{Location: location(row), Qty: qty})
		return nil
	})
	return stock, err
}

// LoadTranslation reads rows of color,model,front sku,rear sku after a header line.
func LoadTranslation(r io.Reader) (sim.Catalog, error) {
	catalog := sim.Catalog{}
	err := readRows(r, true, 4, func(row []string) error {
		if row[2] == "" || row[3] == "" {
			return errors.New("empty sku")
		}
		catalog.Add(row[0], row[1], sim.ItemPair{Front: row[2], Rear: row[3]})
		return nil
	})
	return catalog, err
}

// LoadDir loads a layout from the standard file names in dir. The traversal
// table and the translation table are required; initial stock is optional.
func LoadDir(dir string) (*Layout, error) {
	l := &Layout{}

	faces, err := loadFile(dir, TraversalFile, LoadTraversalTable)
	if err != nil {
		return nil, err
	}
	l.Faces = faces

	catalog, err := loadFile(dir, TranslationFile, LoadTranslation)
	if err != nil {
		return nil, err
	}
	l.Catalog = catalog

	stock, err := loadFile(dir, InitialFile, LoadInitialStock)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logrus.Infof("no %s in %s, every pick face starts full", InitialFile, dir)
	case err != nil:
		return nil, err
	default:
		l.Stock = stock
	}
	return l, nil
}

// Populate adds every face to inv and applies the initial stock overrides.
func (l *Layout) Populate(inv *sim.Inventory) error {
	for _, f := range l.Faces {
		if err := inv.AddFace(f.Location, f.SKU); err != nil {
			return err
		}
	}
	for _, s := range l.Stock {
		if err := inv.SetStock(s.Location.Key(), s.Qty); err != nil {
			return err
		}
	}
	return nil
}

func loadFile[T any](dir, name string, load func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return zero, fmt.Errorf("%w: %w", sim.ErrConfig, err)
	}
	defer f.Close()
	v, err := load(f)
	if err != nil {
		var re *RowError
		if errors.As(err, &re) {
			re.File = name
		}
		return zero, err
	}
	return v, nil
}

// readRows feeds each row of exactly want fields to fn. Trailing empty
// fields (a trailing comma) are tolerated, and blank lines are skipped.
func readRows(r io.Reader, header bool, want int, fn func(row []string) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return &RowError{Line: pe.Line, Err: pe.Err}
			}
			return &RowError{Err: err}
		}
		line, _ := cr.FieldPos(0)
		if first && header {
			first = false
			continue
		}
		first = false
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		for len(row) > want && row[len(row)-1] == "" {
			row = row[:len(row)-1]
		}
		if len(row) != want {
			return &RowError{Line: line, Err: fmt.Errorf("want %d fields, got %d", want, len(row))}
		}
		if err := fn(row); err != nil {
			return &RowError{Line: line, Err: err}
		}
	}
}

func location(row []string) sim.Location {
	return sim.Location{Zone: row[0], Aisle: row[1], Rack: row[2], Level: row[3]}
}
