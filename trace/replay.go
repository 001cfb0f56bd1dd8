// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package trace

import (
	"encoding/csv"
	"errors"
	"io"
	"slices"

	"github.com/ezrec/lumen/isa"
	"github.com/ezrec/lumen/metrics"
)

// Reader reads records back from a CSV trace.
type Reader struct {
	csv *csv.Reader
	row int
}

// NewReader creates a trace reader.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	return &Reader{
		csv: cr,
	}
}

// Read returns the next record, or io.EOF at the end of the trace.
func (tr *Reader) Read() (rec isa.Record, err error) {
	for {
		var fields []string
		fields, err = tr.csv.Read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				err = &ErrRow{Row: tr.row + 1, Err: err}
			}
			return
		}
		tr.row++

		if tr.row == 1 && slices.Equal(fields, Header) {
			continue
		}

		rec, err = parse(fields)
		if err != nil {
			err = &ErrRow{Row: tr.row, Err: err}
		}
		return
	}
}

// group is the rows of one source instruction.
type group struct {
	seq      int
	mnemonic string
	level    isa.Level
	targets  []isa.Target
}

func (g *group) record(rec isa.Record) {
	if rec.Level == isa.LEVEL_UNSUPPORTED {
		return
	}
	g.targets = append(g.targets, isa.Target{
		WavelengthNm:    rec.WavelengthNm,
		ParallelLanes:   rec.ParallelLanes,
		SourceMnemonic:  rec.Mnemonic,
		ExecutionTimePs: rec.ExecutionTimePs,
	})
}

// Replay rebuilds the metrics of a trace. classOf maps a mnemonic to
// its operation class, and baseline gives the ideal time per class.
func Replay(r io.Reader, classOf func(mnemonic string) isa.Class, baseline isa.Baseline) (snap metrics.Snapshot, err error) {
	agg := metrics.NewAggregator(baseline)
	reader := NewReader(r)

	var current *group
	flush := func() (err error) {
		if current == nil {
			return
		}
		if current.level == isa.LEVEL_UNSUPPORTED {
			agg.Fault()
		} else {
			err = agg.Record(current.level, classOf(current.mnemonic), current.targets)
		}
		current = nil
		return
	}

	for {
		var rec isa.Record
		rec, err = reader.Read()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			return
		}

		if current != nil && current.seq == rec.Seq {
			if current.mnemonic != rec.Mnemonic || current.level != rec.Level || rec.Level == isa.LEVEL_UNSUPPORTED {
				err = &ErrRow{Row: reader.row, Err: invalid("seq %d mixes %v/%v with %v/%v",
					rec.Seq, current.mnemonic, current.level, rec.Mnemonic, rec.Level)}
				return
			}
			current.record(rec)
			continue
		}

		err = flush()
		if err != nil {
			return
		}

		current = &group{
			seq:      rec.Seq,
			mnemonic: rec.Mnemonic,
			level:    rec.Level,
		}
		current.record(rec)
	}

	err = flush()
	if err != nil {
		return
	}

	snap = agg.Snapshot()
	return
}
