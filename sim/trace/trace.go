package trace

import "sync"

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures rejections, reworks and loads.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during a run.
// Record methods are safe for concurrent use; read the slices once the run is over.
type SimulationTrace struct {
	Config     TraceConfig
	Rejections []RejectionRecord
	Reworks    []ReworkRecord
	Loads      []LoadRecord

	mu sync.Mutex
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Rejections: make([]RejectionRecord, 0),
		Reworks:    make([]ReworkRecord, 0),
		Loads:      make([]LoadRecord, 0),
	}
}

func (st *SimulationTrace) enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordRejection appends a rejection record.
func (st *SimulationTrace) RecordRejection(record RejectionRecord) {
	if !st.enabled() {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.Rejections = append(st.Rejections, record)
}

// RecordRework appends a rework record.
func (st *SimulationTrace) RecordRework(record ReworkRecord) {
	if !st.enabled() {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.Reworks = append(st.Reworks, record)
}

// RecordLoad appends a load record.
func (st *SimulationTrace) RecordLoad(record LoadRecord) {
	if !st.enabled() {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.Loads = append(st.Loads, record)
}
