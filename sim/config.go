package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// BatchSize is the number of orders grouped into one WorkRequest.
// The pallet capacities below are derived from it and are not configurable.
const BatchSize = 4

const (
	RawPalletCapacity       = 2 * BatchSize // one front and one rear item per order
	OrganizedPalletCapacity = BatchSize     // one item per order, positionally ordered
	itemsPerRequest         = 2 * BatchSize
)

// StockConfig groups pick-face stock levels.
type StockConfig struct {
	Full               int `yaml:"full"`                // nominal stock of a healthy pick face (default 30)
	ReplenishThreshold int `yaml:"replenish_threshold"` // stock at or below which a face is queued (default 5)
	ReplenishAmount    int `yaml:"replenish_amount"`    // units added when replenishing a low face (default 25)
}

// TruckConfig groups truck loading parameters.
type TruckConfig struct {
	BedSize   int  `yaml:"bed_size"`   // pallets per truck (default 40, must be even)
	AutoSpawn bool `yaml:"auto_spawn"` // spawn a new truck when the active one cannot take another request
}

// Config is the simulation configuration loaded from YAML.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Stock  StockConfig `yaml:"stock"`
	Trucks TruckConfig `yaml:"trucks"`
}

// DefaultConfig returns the configuration used when no YAML file is given.
func DefaultConfig() Config {
	return Config{
		Stock: StockConfig{
			Full:               30,
			ReplenishThreshold: 5,
			ReplenishAmount:    25,
		},
		Trucks: TruckConfig{
			BedSize:   40,
			AutoSpawn: false,
		},
	}
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c Config) Validate() error {
	if c.Stock.Full <= 0 {
		return fmt.Errorf("%w: stock.full must be > 0, got %d", ErrConfig, c.Stock.Full)
	}
	if c.Stock.ReplenishThreshold < 0 || c.Stock.ReplenishThreshold >= c.Stock.Full {
		return fmt.Errorf("%w: stock.replenish_threshold must be in [0, %d), got %d",
			ErrConfig, c.Stock.Full, c.Stock.ReplenishThreshold)
	}
	if c.Stock.ReplenishAmount <= 0 {
		return fmt.Errorf("%w: stock.replenish_amount must be > 0, got %d", ErrConfig, c.Stock.ReplenishAmount)
	}
	if c.Trucks.BedSize < 2 || c.Trucks.BedSize%2 != 0 {
		return fmt.Errorf("%w: trucks.bed_size must be a positive even number, got %d", ErrConfig, c.Trucks.BedSize)
	}
	return nil
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
// Unknown keys are rejected so that typos surface as errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: read config: %v", ErrConfig, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: parse %s: %v", ErrConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logrus.Debugf("loaded config from %s: %+v", path, cfg)
	return cfg, nil
}
