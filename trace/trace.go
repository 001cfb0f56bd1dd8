// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package trace logs translated instructions as flat CSV records, and
// replays such logs into metrics offline.
//
// Each row is one target instruction:
//
//	seq,mnemonic,level,lanes,wavelength_nm,time_ps
//
// Rows sharing a seq belong to one source instruction. A source
// instruction that failed to lower is logged as a single row with level
// "unsupported" and zero lanes and time.
package trace

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ezrec/lumen/isa"
)

// Header is the first row of every trace.
var Header = []string{"seq", "mnemonic", "level", "lanes", "wavelength_nm", "time_ps"}

// Writer appends records to a CSV trace. It is not safe for concurrent
// use.
type Writer struct {
	csv    *csv.Writer
	header bool
}

// NewWriter creates a trace writer. The header is written with the first
// record.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		csv: csv.NewWriter(w),
	}
}

// Write appends records.
func (tw *Writer) Write(records ...isa.Record) (err error) {
	if !tw.header {
		err = tw.csv.Write(Header)
		if err != nil {
			return
		}
		tw.header = true
	}

	for _, rec := range records {
		err = tw.csv.Write(row(rec))
		if err != nil {
			return
		}
	}

	return
}

// Flush writes any buffered rows to the underlying writer.
func (tw *Writer) Flush() error {
	tw.csv.Flush()
	return tw.csv.Error()
}

func row(rec isa.Record) []string {
	return []string{
		strconv.Itoa(rec.Seq),
		rec.Mnemonic,
		rec.Level.String(),
		strconv.FormatUint(uint64(rec.ParallelLanes), 10),
		strconv.FormatFloat(rec.WavelengthNm, 'f', -1, 64),
		strconv.FormatUint(rec.ExecutionTimePs, 10),
	}
}

func parse(fields []string) (rec isa.Record, err error) {
	if len(fields) != len(Header) {
		err = invalid("%d fields", len(fields))
		return
	}

	rec.Seq, err = strconv.Atoi(fields[0])
	if err != nil {
		err = invalid("seq %v", err)
		return
	}

	// Blank source mnemonics lower through the fallback and are logged empty.
	rec.Mnemonic = fields[1]

	rec.Level, err = isa.ParseLevel(fields[2])
	if err != nil {
		return
	}

	lanes, err := strconv.ParseUint(fields[3], 10, 32)
	if err != nil {
		err = invalid("lanes %v", err)
		return
	}
	rec.ParallelLanes = uint(lanes)

	rec.WavelengthNm, err = strconv.ParseFloat(fields[4], 64)
	if err != nil {
		err = invalid("wavelength %v", err)
		return
	}

	rec.ExecutionTimePs, err = strconv.ParseUint(fields[5], 10, 64)
	if err != nil {
		err = invalid("time %v", err)
		return
	}

	if rec.Level != isa.LEVEL_UNSUPPORTED && (rec.ParallelLanes == 0 || rec.ExecutionTimePs == 0) {
		err = invalid("lanes %d time %d", rec.ParallelLanes, rec.ExecutionTimePs)
		return
	}

	return
}
