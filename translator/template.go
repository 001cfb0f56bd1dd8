// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package translator

import (
	"strconv"
	"strings"

	"github.com/ezrec/lumen/isa"
)

// Wavelength bands used by the default tables.
const (
	BAND_O_NM = 1310.00 // Data movement channel.
	BAND_C_NM = 1550.12 // Arithmetic channel.
	BAND_L_NM = 1625.00 // Control channel.

	FALLBACK_OPCODE     = 0xff // Generic emulation opcode.
	FALLBACK_TIME_PS    = 1000 // Execution time of the generic operation.
	FALLBACK_MIN_FACTOR = 5    // Fallback must be this much slower than any native template.

	WIDE_LANE_SCALE = 2   // Lane multiplier for 64-bit operands.
	SP_STEP         = "4" // Stack slot size used by PUSH and POP.
)

// Template is the fixed lowering of one mnemonic.
type Template struct {
	Mnemonic        string
	OpcodeId        uint32
	WavelengthNm    float64
	ParallelLanes   uint
	ExecutionTimePs uint64
	Level           isa.Level // LEVEL_NATIVE or LEVEL_TRANSLATED.
	Class           isa.Class
}

// Target returns the substrate instruction described by the template.
func (tmpl Template) Target() isa.Target {
	return isa.Target{
		OpcodeId:        tmpl.OpcodeId,
		WavelengthNm:    tmpl.WavelengthNm,
		ParallelLanes:   tmpl.ParallelLanes,
		SourceMnemonic:  tmpl.Mnemonic,
		ExecutionTimePs: tmpl.ExecutionTimePs,
	}
}

// Step is one primitive instruction of a decomposition. An operand of the
// form "$n" is replaced by the n-th operand of the source instruction;
// any other operand is used literally.
type Step struct {
	Mnemonic string
	Operands []string
}

// Decomposition rewrites a mnemonic into primitive steps.
type Decomposition struct {
	Mnemonic string
	Class    isa.Class
	Steps    []Step
}

// operandIndex decodes a "$n" operand reference.
func operandIndex(operand string) (index int, ok bool) {
	if !strings.HasPrefix(operand, "$") {
		return
	}

	index, err := strconv.Atoi(operand[1:])
	if err != nil || index < 0 {
		return
	}

	ok = true
	return
}

// Arity returns the number of source operands the decomposition needs.
func (d Decomposition) Arity() (arity int) {
	for _, step := range d.Steps {
		for _, operand := range step.Operands {
			index, ok := operandIndex(operand)
			if ok && index+1 > arity {
				arity = index + 1
			}
		}
	}
	return
}

// Expand binds the source operands into the decomposition steps.
func (d Decomposition) Expand(src isa.Source) (steps []isa.Source, err error) {
	arity := d.Arity()
	if len(src.Operands) < arity {
		err = &ErrDecomposition{Mnemonic: d.Mnemonic, Want: arity, Got: len(src.Operands)}
		return
	}

	steps = make([]isa.Source, 0, len(d.Steps))
	for _, step := range d.Steps {
		operands := make([]string, len(step.Operands))
		for n, operand := range step.Operands {
			index, ok := operandIndex(operand)
			if ok {
				operand = src.Operands[index]
			}
			operands[n] = operand
		}
		steps = append(steps, isa.Source{
			Mnemonic: step.Mnemonic,
			Operands: operands,
			Width:    isa.WIDTH_32,
		})
	}

	return
}

func native(mnemonic string, opcode uint32, nm float64, lanes uint, ps uint64, class isa.Class) Template {
	return Template{mnemonic, opcode, nm, lanes, ps, isa.LEVEL_NATIVE, class}
}

func translated(mnemonic string, opcode uint32, nm float64, lanes uint, ps uint64, class isa.Class) Template {
	return Template{mnemonic, opcode, nm, lanes, ps, isa.LEVEL_TRANSLATED, class}
}

// defaultTemplates is the built-in template table.
var defaultTemplates = []Template{
	native("ADD", 0x01, BAND_C_NM, 64, 10, isa.CLASS_ARITHMETIC),
	native("SUB", 0x02, BAND_C_NM, 64, 10, isa.CLASS_ARITHMETIC),
	native("AND", 0x03, 1550.92, 64, 8, isa.CLASS_ARITHMETIC),
	native("OR", 0x04, 1550.92, 64, 8, isa.CLASS_ARITHMETIC),
	native("XOR", 0x05, 1551.72, 64, 8, isa.CLASS_ARITHMETIC),
	native("CMP", 0x06, BAND_C_NM, 64, 10, isa.CLASS_ARITHMETIC),
	native("MOV", 0x07, BAND_O_NM, 64, 5, isa.CLASS_MOVE),
	native("JMP", 0x08, BAND_L_NM, 1, 15, isa.CLASS_CONTROL),

	translated("MUL", 0x20, 1552.52, 32, 40, isa.CLASS_ARITHMETIC),
	translated("DIV", 0x21, 1553.33, 16, 120, isa.CLASS_ARITHMETIC),
	translated("SHL", 0x22, 1554.13, 64, 20, isa.CLASS_ARITHMETIC),
	translated("SHR", 0x23, 1554.13, 64, 20, isa.CLASS_ARITHMETIC),
	translated("NOT", 0x24, 1550.92, 64, 12, isa.CLASS_ARITHMETIC),
	translated("LOAD", 0x25, 1311.00, 32, 45, isa.CLASS_MOVE),
	translated("STORE", 0x26, 1311.00, 32, 50, isa.CLASS_MOVE),
	translated("CALL", 0x27, BAND_L_NM, 1, 30, isa.CLASS_CONTROL),
	translated("RET", 0x28, BAND_L_NM, 1, 30, isa.CLASS_CONTROL),
}

// defaultDecompositions is the built-in decomposition table.
var defaultDecompositions = []Decomposition{
	{Mnemonic: "PUSH", Class: isa.CLASS_MOVE, Steps: []Step{
		{"MOV", []string{"STACK", "$0"}},
		{"ADD", []string{"SP", SP_STEP}},
	}},
	{Mnemonic: "POP", Class: isa.CLASS_MOVE, Steps: []Step{
		{"SUB", []string{"SP", SP_STEP}},
		{"MOV", []string{"$0", "STACK"}},
	}},
	{Mnemonic: "INC", Class: isa.CLASS_ARITHMETIC, Steps: []Step{
		{"ADD", []string{"$0", "1"}},
	}},
	{Mnemonic: "DEC", Class: isa.CLASS_ARITHMETIC, Steps: []Step{
		{"SUB", []string{"$0", "1"}},
	}},
	{Mnemonic: "XCHG", Class: isa.CLASS_MOVE, Steps: []Step{
		{"MOV", []string{"TMP", "$0"}},
		{"MOV", []string{"$0", "$1"}},
		{"MOV", []string{"$1", "TMP"}},
	}},
}
