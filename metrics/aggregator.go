// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package metrics

import (
	"sync"

	"github.com/ezrec/lumen/isa"
)

// Recorder accepts the outcome of lowering one source instruction.
type Recorder interface {
	// Record adds a successful lowering.
	Record(level isa.Level, class isa.Class, produced []isa.Target) error
	// Fault counts a source instruction that failed to lower. A closed
	// Collector discards it.
	Fault()
}

// Aggregator accumulates statistics under a mutex.
type Aggregator struct {
	mutex    sync.Mutex
	baseline isa.Baseline
	state    Snapshot
}

var _ Recorder = (*Aggregator)(nil)

// NewAggregator creates an empty aggregator. baseline gives the fastest
// native time per operation class.
func NewAggregator(baseline isa.Baseline) (agg *Aggregator) {
	agg = &Aggregator{
		baseline: baseline,
	}
	agg.state.derive()
	return
}

// Record adds one lowered source instruction. LEVEL_UNSUPPORTED is
// rejected and leaves the aggregator unchanged.
func (agg *Aggregator) Record(level isa.Level, class isa.Class, produced []isa.Target) (err error) {
	if level < isa.LEVEL_NATIVE || level > isa.LEVEL_EMULATED {
		err = ErrLevelUnrecorded
		return
	}

	ideal := agg.baseline.Ideal(class)
	total := isa.TotalTimePs(produced)

	agg.mutex.Lock()
	defer agg.mutex.Unlock()

	switch level {
	case isa.LEVEL_NATIVE:
		agg.state.Native++
	case isa.LEVEL_TRANSLATED:
		agg.state.Translated++
	case isa.LEVEL_EMULATED:
		agg.state.Emulated++
	}
	agg.state.Processed++
	agg.state.Targets += uint64(len(produced))
	agg.state.TotalTimePs += total
	agg.state.IdealTimePs += ideal
	agg.state.derive()

	return
}

// Fault counts a failed lowering. Level counts are not touched.
func (agg *Aggregator) Fault() {
	agg.mutex.Lock()
	defer agg.mutex.Unlock()

	agg.state.Faults++
}

// Snapshot returns a copy of the current statistics.
func (agg *Aggregator) Snapshot() Snapshot {
	agg.mutex.Lock()
	defer agg.mutex.Unlock()

	return agg.state
}

// Reset clears all statistics.
func (agg *Aggregator) Reset() {
	agg.mutex.Lock()
	defer agg.mutex.Unlock()

	agg.state = Snapshot{}
	agg.state.derive()
}
