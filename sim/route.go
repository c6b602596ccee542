package sim

import (
	"fmt"
	"sort"
)

// PlanRoute returns the order in which a picker visits storage locations for
// the given items: SKUs are sorted lexicographically (stable, so duplicates
// keep their relative order) and each is mapped onto its unique location.
// The result depends only on items and the inventory's SKU table.
func PlanRoute(items []string, inv *Inventory) ([]Location, error) {
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	route := make([]Location, 0, len(sorted))
	for _, sku := range sorted {
		loc, err := inv.LocationOf(sku)
		if err != nil {
			return nil, fmt.Errorf("plan route: %w", err)
		}
		route = append(route, loc)
	}
	return route, nil
}
