// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

const (
	GRID_BASE_NM    = 1530.0 // First channel of the default register grid.
	GRID_SPACING_NM = 0.8    // DWDM 100 GHz channel spacing.
	REGISTER_BITS   = 64     // Capacity of a default register.
)

// Register is a named optical register bound to one wavelength.
type Register struct {
	Name         string
	WavelengthNm float64
	CapacityBits uint
}

// RegisterFile is a fixed set of registers with pairwise distinct
// wavelengths.
type RegisterFile struct {
	regs   []Register
	byName map[string]int
}

// NewRegisterFile validates and builds a register file.
func NewRegisterFile(regs ...Register) (rf *RegisterFile, err error) {
	byName := make(map[string]int, len(regs))
	byWave := make(map[float64]string, len(regs))

	for n, reg := range regs {
		key := strings.ToUpper(reg.Name)
		if _, ok := byName[key]; ok {
			err = fmt.Errorf("%w: %v", ErrRegisterDuplicate, reg.Name)
			return
		}
		if other, ok := byWave[reg.WavelengthNm]; ok {
			err = fmt.Errorf("%w: %v and %v at %vnm", ErrWavelengthDuplicate, other, reg.Name, reg.WavelengthNm)
			return
		}
		byName[key] = n
		byWave[reg.WavelengthNm] = reg.Name
	}

	rf = &RegisterFile{
		regs:   slices.Clone(regs),
		byName: byName,
	}
	return
}

// DefaultRegisterFile returns R0-R7 on the DWDM grid, followed by the
// stack pointer and stack window channels.
func DefaultRegisterFile() *RegisterFile {
	var regs []Register
	for n := range 8 {
		regs = append(regs, Register{
			Name:         fmt.Sprintf("R%d", n),
			WavelengthNm: GRID_BASE_NM + GRID_SPACING_NM*float64(n),
			CapacityBits: REGISTER_BITS,
		})
	}
	regs = append(regs,
		Register{Name: "SP", WavelengthNm: GRID_BASE_NM + GRID_SPACING_NM*8, CapacityBits: REGISTER_BITS},
		Register{Name: "STACK", WavelengthNm: GRID_BASE_NM + GRID_SPACING_NM*9, CapacityBits: REGISTER_BITS},
		Register{Name: "TMP", WavelengthNm: GRID_BASE_NM + GRID_SPACING_NM*10, CapacityBits: REGISTER_BITS},
	)

	rf, err := NewRegisterFile(regs...)
	if err != nil {
		panic(err)
	}

	return rf
}

// Lookup finds a register by name, ignoring case.
func (rf *RegisterFile) Lookup(name string) (reg Register, ok bool) {
	n, ok := rf.byName[strings.ToUpper(strings.TrimSpace(name))]
	if ok {
		reg = rf.regs[n]
	}
	return
}

// Len returns the number of registers.
func (rf *RegisterFile) Len() int {
	return len(rf.regs)
}

// All iterates the registers in declaration order.
func (rf *RegisterFile) All() iter.Seq[Register] {
	return slices.Values(rf.regs)
}
