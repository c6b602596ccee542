package report

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/warehouse-sim/warehouse-sim/sim"
)

const timeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id            TEXT PRIMARY KEY,
    description   TEXT NOT NULL DEFAULT '',
    started_at    TEXT NOT NULL,
    finished_at   TEXT NOT NULL,
    orders        INTEGER NOT NULL DEFAULT 0,
    loaded_orders INTEGER NOT NULL DEFAULT 0,
    trucks        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS stock_levels (
    run_id   TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    location TEXT NOT NULL,
    sku      TEXT NOT NULL,
    qty      INTEGER NOT NULL,
    PRIMARY KEY (run_id, location)
);

CREATE TABLE IF NOT EXISTS loaded_orders (
    run_id    TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    order_id  INTEGER NOT NULL,
    front_sku TEXT NOT NULL,
    rear_sku  TEXT NOT NULL,
    PRIMARY KEY (run_id, order_id)
);
`

// Store archives finished runs in a SQLite database.
type Store struct {
	*sql.DB
}

// Open opens (or creates) a SQLite database and runs migrations.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	s := &Store{sqlDB}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.Exec(schema)
	return err
}

// Run is one finished simulation as archived.
type Run struct {
	ID          string
	Description string
	StartedAt   time.Time
	FinishedAt  time.Time
	Orders      int
	Trucks      int
	Report      *Report
}

// RunSummary is a row of the runs table.
type RunSummary struct {
	ID           string
	Description  string
	StartedAt    time.Time
	FinishedAt   time.Time
	Orders       int
	LoadedOrders int
	Trucks       int
}

// SaveRun stores run and its report under a fresh id, which is returned.
func (s *Store) SaveRun(run Run) (string, error) {
	id := uuid.New().String()
	rep := run.Report
	if rep == nil {
		rep = &Report{}
	}

	tx, err := s.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs (id, description, started_at, finished_at, orders, loaded_orders, trucks)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, run.Description, run.StartedAt.Format(timeLayout), run.FinishedAt.Format(timeLayout),
		run.Orders, len(rep.Orders), run.Trucks)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	for _, l := range rep.Stock {
		_, err := tx.Exec(`INSERT INTO stock_levels (run_id, location, sku, qty) VALUES (?, ?, ?, ?)`,
			id, l.Location.Key(), l.SKU, l.Stock)
		if err != nil {
			return "", fmt.Errorf("insert stock level %s: %w", l.Location, err)
		}
	}
	for _, o := range rep.Orders {
		items := o.Items()
		_, err := tx.Exec(`INSERT INTO loaded_orders (run_id, order_id, front_sku, rear_sku) VALUES (?, ?, ?, ?)`,
			id, o.ID(), items.Front, items.Rear)
		if err != nil {
			return "", fmt.Errorf("insert order %d: %w", o.ID(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListRuns returns every archived run, most recent first.
func (s *Store) ListRuns() ([]RunSummary, error) {
	rows, err := s.Query(`SELECT id, description, started_at, finished_at, orders, loaded_orders, trucks
		FROM runs ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Description, &started, &finished, &r.Orders, &r.LoadedOrders, &r.Trucks); err != nil {
			return nil, err
		}
		r.StartedAt = scanTime(started)
		r.FinishedAt = scanTime(finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// StockLevels returns the archived non-full stock levels of a run, by location.
func (s *Store) StockLevels(runID string) ([]sim.StockLevel, error) {
	rows, err := s.Query(`SELECT location, sku, qty FROM stock_levels WHERE run_id = ? ORDER BY location`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sim.StockLevel
	for rows.Next() {
		var key string
		var l sim.StockLevel
		if err := rows.Scan(&key, &l.SKU, &l.Stock); err != nil {
			return nil, err
		}
		l.Location = splitKey(key)
		out = append(out, l)
	}
	return out, rows.Err()
}

// LoadedOrderIDs returns the ids of a run's loaded orders in ascending order.
func (s *Store) LoadedOrderIDs(runID string) ([]int, error) {
	rows, err := s.Query(`SELECT order_id FROM loaded_orders WHERE run_id = ? ORDER BY order_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func scanTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

// splitKey recovers a Location from its key. Keys of four single-character
// fields split exactly; anything else is kept whole in Zone.
func splitKey(key string) sim.Location {
	if len(key) != 4 {
		return sim.Location{Zone: key}
	}
	return sim.Location{Zone: key[0:1], Aisle: key[1:2], Rack: key[2:3], Level: key[3:4]}
}
