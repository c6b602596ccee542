package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRejections int
	ByClass         map[string]int // error class → count
	ByWorker        map[string]int // worker name → count
	Reworks         int
	ReworkedIDs     []int // distinct request ids in first-rework order
	Loads           int
	TrucksUsed      int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ByClass:  make(map[string]int),
		ByWorker: make(map[string]int),
	}
	if st == nil {
		return summary
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	summary.TotalRejections = len(st.Rejections)
	for _, r := range st.Rejections {
		summary.ByClass[r.Class]++
		summary.ByWorker[r.Worker]++
	}

	summary.Reworks = len(st.Reworks)
	seen := make(map[int]bool)
	for _, r := range st.Reworks {
		if !seen[r.RequestID] {
			seen[r.RequestID] = true
			summary.ReworkedIDs = append(summary.ReworkedIDs, r.RequestID)
		}
	}

	summary.Loads = len(st.Loads)
	trucks := make(map[int]bool)
	for _, l := range st.Loads {
		trucks[l.TruckID] = true
	}
	summary.TrucksUsed = len(trucks)

	return summary
}
