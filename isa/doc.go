// Package isa holds the value types shared by the compatibility layer.
//
// A Source is one decoded instruction of the legacy CPU: a mnemonic, its
// operand text, the raw opcode bytes and the operand width. A Target is one
// operation of the optical substrate: an opcode id bound to a wavelength
// channel, spanning a number of parallel lanes, with an estimated execution
// time in picoseconds.
//
// Level classifies how a Source was lowered, and Class groups mnemonics by
// the kind of work they do so that the efficiency of a translation can be
// compared against an all-native baseline.
//
// Registers are pure vocabulary: each optical register is named and bound
// to a distinct wavelength. Nothing in this package mutates them.
package isa
