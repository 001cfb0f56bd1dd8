// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package metrics

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/lumen/isa"
)

// Snapshot is a point in time copy of the accumulated statistics.
type Snapshot struct {
	Native     uint64 // Source instructions lowered natively.
	Translated uint64 // Source instructions lowered by translation or decomposition.
	Emulated   uint64 // Source instructions lowered by the generic fallback.
	Processed  uint64 // Native + Translated + Emulated.
	Faults     uint64 // Source instructions that failed to lower.

	Targets     uint64 // Target instructions produced.
	TotalTimePs uint64 // Sum of target execution times.
	IdealTimePs uint64 // Sum of the all-native baseline times.

	AverageExecutionTimePs float64 // TotalTimePs / Targets.
	EfficiencyRatio        float64 // IdealTimePs / TotalTimePs, 1.0 if empty.
}

// derive recomputes the ratio fields from the totals.
func (s *Snapshot) derive() {
	s.AverageExecutionTimePs = 0
	if s.Targets > 0 {
		s.AverageExecutionTimePs = float64(s.TotalTimePs) / float64(s.Targets)
	}

	s.EfficiencyRatio = 1.0
	if s.TotalTimePs > 0 {
		s.EfficiencyRatio = float64(s.IdealTimePs) / float64(s.TotalTimePs)
	}
}

// Add combines two snapshots as if their inputs had been concatenated.
func (s Snapshot) Add(other Snapshot) (sum Snapshot) {
	sum = Snapshot{
		Native:      s.Native + other.Native,
		Translated:  s.Translated + other.Translated,
		Emulated:    s.Emulated + other.Emulated,
		Processed:   s.Processed + other.Processed,
		Faults:      s.Faults + other.Faults,
		Targets:     s.Targets + other.Targets,
		TotalTimePs: s.TotalTimePs + other.TotalTimePs,
		IdealTimePs: s.IdealTimePs + other.IdealTimePs,
	}
	sum.derive()
	return
}

// Count returns the number of source instructions recorded at a level.
func (s Snapshot) Count(level isa.Level) uint64 {
	switch level {
	case isa.LEVEL_NATIVE:
		return s.Native
	case isa.LEVEL_TRANSLATED:
		return s.Translated
	case isa.LEVEL_EMULATED:
		return s.Emulated
	case isa.LEVEL_UNSUPPORTED:
		return s.Faults
	}
	return 0
}

func (s Snapshot) String() string {
	return fmt.Sprintf("native:%d translated:%d emulated:%d faults:%d targets:%d avg:%.2fps efficiency:%.4f",
		s.Native, s.Translated, s.Emulated, s.Faults, s.Targets, s.AverageExecutionTimePs, s.EfficiencyRatio)
}

// Table renders the snapshot as a text table.
func (s Snapshot) Table() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(f("compatibility metrics"))
	tw.AppendHeader(table.Row{f("metric"), f("value")})

	for _, level := range isa.Levels {
		tw.AppendRow(table.Row{level.String(), s.Count(level)})
	}
	tw.AppendSeparator()
	tw.AppendRow(table.Row{f("processed"), s.Processed})
	tw.AppendRow(table.Row{f("targets"), s.Targets})
	tw.AppendRow(table.Row{f("total time (ps)"), s.TotalTimePs})
	tw.AppendRow(table.Row{f("ideal time (ps)"), s.IdealTimePs})
	tw.AppendRow(table.Row{f("average time (ps)"), fmt.Sprintf("%.2f", s.AverageExecutionTimePs)})
	tw.AppendRow(table.Row{f("efficiency"), fmt.Sprintf("%.4f", s.EfficiencyRatio)})

	return tw.Render()
}
