// Package testutil provides shared test infrastructure for the warehouse
// simulator. It loads the golden scenario dataset and writes a scenario's
// layout tables into a directory the layout loader can read.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one scripted run and the reports it must produce.
// Table and script fields hold one line per element.
type GoldenTestCase struct {
	Name        string   `json:"name"`
	Traversal   []string `json:"traversal"`
	Translation []string `json:"translation"`
	Initial     []string `json:"initial,omitempty"` // nil means no initial.csv
	Script      []string `json:"script"`

	Expected GoldenReport `json:"expected"`
}

// GoldenReport is the expected outcome of a golden test case.
type GoldenReport struct {
	// Exact report rows, as written to final.csv and orders.csv
	Stock  []string `json:"stock"`
	Orders []string `json:"orders"`

	// Decision trace counts
	Rejections int `json:"rejections"`
	Reworks    int `json:"reworks"`
	TrucksUsed int `json:"trucks_used"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset has no test cases")
	}
	return &dataset
}

// WriteLayout writes the case's tables into dir under the names the layout
// loader expects, plus its script as script.txt, and returns the script path.
func (tc GoldenTestCase) WriteLayout(t *testing.T, dir string) string {
	t.Helper()
	files := map[string][]string{
		"traversal_table.csv": tc.Traversal,
		"translation.csv":     tc.Translation,
		"script.txt":          tc.Script,
	}
	if tc.Initial != nil {
		files["initial.csv"] = tc.Initial
	}
	for name, lines := range files {
		body := strings.Join(lines, "\n") + "\n"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return filepath.Join(dir, "script.txt")
}

// ReadLines returns the non-empty lines of a report file.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
