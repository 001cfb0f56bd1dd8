package translator

import (
	"strings"

	"github.com/ezrec/lumen/isa"
)

// Potential is the level a mnemonic is expected to reach, before any
// translation is attempted.
type Potential int

//go:generate go tool stringer -linecomment -type=Potential
const (
	POTENTIAL_NATIVE     = Potential(0) // likely-native
	POTENTIAL_TRANSLATED = Potential(1) // likely-translated
	POTENTIAL_UNKNOWN    = Potential(2) // unknown
)

// Classify reports whether a mnemonic is in the native set, the
// translated set, or neither. Case is ignored; operands are never
// considered.
func (tr *Translator) Classify(mnemonic string) Potential {
	key := strings.ToUpper(strings.TrimSpace(mnemonic))

	if _, ok := tr.native[key]; ok {
		return POTENTIAL_NATIVE
	}

	if _, ok := tr.translated[key]; ok {
		return POTENTIAL_TRANSLATED
	}

	return POTENTIAL_UNKNOWN
}

// Classify uses the default translator.
func Classify(mnemonic string) Potential {
	return Default().Classify(mnemonic)
}

// ClassOf returns the operation class of a mnemonic. Unknown mnemonics
// are treated as arithmetic.
func (tr *Translator) ClassOf(mnemonic string) isa.Class {
	key := strings.ToUpper(strings.TrimSpace(mnemonic))

	if tmpl, ok := tr.templates[key]; ok {
		return tmpl.Class
	}

	if decomp, ok := tr.decomps[key]; ok {
		return decomp.Class
	}

	return isa.CLASS_ARITHMETIC
}
