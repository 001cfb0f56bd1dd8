// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"fmt"
	"slices"
	"strings"
)

// Width is the operand width of a source instruction, in bits.
type Width int

//go:generate go tool stringer -linecomment -type=Width

const (
	WIDTH_32 = Width(32) // 32
	WIDTH_64 = Width(64) // 64
)

// Source is a decoded legacy CPU instruction.
type Source struct {
	Mnemonic string   // Instruction mnemonic, any case.
	Operands []string // Operand text, in order.
	Opcode   []byte   // Raw opcode bytes, if known.
	Width    Width    // Operand width. Anything but WIDTH_64 is narrow.
}

// Key returns the normalized mnemonic used for table lookups.
func (src Source) Key() string {
	return strings.ToUpper(strings.TrimSpace(src.Mnemonic))
}

// Wide returns true for 64-bit instructions.
func (src Source) Wide() bool {
	return src.Width == WIDTH_64
}

// Narrow returns a 32-bit copy of the instruction.
func (src Source) Narrow() Source {
	return Source{
		Mnemonic: src.Mnemonic,
		Operands: slices.Clone(src.Operands),
		Opcode:   slices.Clone(src.Opcode),
		Width:    WIDTH_32,
	}
}

// String returns the listing form of the instruction.
func (src Source) String() (text string) {
	text = src.Mnemonic
	if src.Wide() {
		text += ".64"
	}
	if len(src.Operands) > 0 {
		text += " " + strings.Join(src.Operands, ", ")
	}
	if len(src.Opcode) > 0 {
		text += fmt.Sprintf(" {% x}", src.Opcode)
	}
	return
}
