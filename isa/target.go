// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"fmt"
)

// Target is one operation of the optical substrate.
type Target struct {
	OpcodeId        uint32  // Substrate opcode.
	WavelengthNm    float64 // Wavelength channel the operation is bound to.
	ParallelLanes   uint    // Simultaneous sub-operations, at least 1.
	SourceMnemonic  string  // Originating mnemonic, empty if none.
	ExecutionTimePs uint64  // Estimated execution time, non-zero.
}

// Valid returns true if the lane count and timing are usable.
func (t Target) Valid() bool {
	return t.ParallelLanes >= 1 && t.ExecutionTimePs > 0
}

// Scaled returns a copy with the lane count multiplied by factor.
func (t Target) Scaled(factor uint) Target {
	t.ParallelLanes *= factor
	return t
}

func (t Target) String() string {
	return fmt.Sprintf("op:%#02x λ:%.1fnm lanes:%d t:%dps src:%q",
		t.OpcodeId, t.WavelengthNm, t.ParallelLanes, t.ExecutionTimePs, t.SourceMnemonic)
}

// TotalTimePs sums the execution time of a target sequence.
func TotalTimePs(targets []Target) (ps uint64) {
	for _, t := range targets {
		ps += t.ExecutionTimePs
	}
	return
}
