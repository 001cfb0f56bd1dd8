package isa

// Record is the flat log form of one emitted target instruction. Seq
// numbers the source instruction the target was produced for, so that
// multi-step decompositions can be regrouped offline.
type Record struct {
	Seq             int
	Mnemonic        string
	Level           Level
	ParallelLanes   uint
	WavelengthNm    float64
	ExecutionTimePs uint64
}

// Records flattens a translation into log records.
func Records(seq int, mnemonic string, level Level, targets []Target) (records []Record) {
	records = make([]Record, 0, len(targets))
	for _, t := range targets {
		records = append(records, Record{
			Seq:             seq,
			Mnemonic:        mnemonic,
			Level:           level,
			ParallelLanes:   t.ParallelLanes,
			WavelengthNm:    t.WavelengthNm,
			ExecutionTimePs: t.ExecutionTimePs,
		})
	}
	return
}
