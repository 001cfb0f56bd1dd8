// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package translator

import (
	"iter"
	"strings"
	"sync"

	"github.com/ezrec/lumen/internal"
	"github.com/ezrec/lumen/isa"
)

// Result is the outcome of lowering one source instruction.
type Result struct {
	Level   isa.Level    // Path that produced Targets.
	Class   isa.Class    // Operation class of the source mnemonic.
	Targets []isa.Target // Substrate instructions, never empty on success.
}

// Translator lowers source instructions using a fixed Profile.
type Translator struct {
	profile    *Profile
	templates  map[string]Template
	decomps    map[string]Decomposition
	native     map[string]struct{}
	translated map[string]struct{}
	baseline   isa.Baseline
	registers  *isa.RegisterFile
}

// NewTranslator validates a profile and builds its lookup tables. The
// profile is copied; later changes to it have no effect.
func NewTranslator(prof *Profile) (tr *Translator, err error) {
	err = prof.Validate()
	if err != nil {
		return
	}

	prof = prof.Clone()

	registers, err := isa.NewRegisterFile(prof.Registers...)
	if err != nil {
		return
	}

	tr = &Translator{
		profile:    prof,
		templates:  prof.Templates,
		decomps:    prof.Decompositions,
		native:     make(map[string]struct{}),
		translated: make(map[string]struct{}),
		baseline:   prof.Baseline(),
		registers:  registers,
	}

	for key, tmpl := range prof.Templates {
		if tmpl.Level == isa.LEVEL_NATIVE {
			tr.native[key] = struct{}{}
		} else {
			tr.translated[key] = struct{}{}
		}
	}

	return
}

var std = sync.OnceValue(func() *Translator {
	tr, err := NewTranslator(DefaultProfile())
	if err != nil {
		panic(err)
	}
	return tr
})

// Default returns the shared translator for the built-in profile.
func Default() *Translator {
	return std()
}

// Profile returns a copy of the translator's profile.
func (tr *Translator) Profile() *Profile {
	return tr.profile.Clone()
}

// Baseline returns the fastest native time per class.
func (tr *Translator) Baseline() isa.Baseline {
	baseline := make(isa.Baseline, len(tr.baseline))
	for class, ps := range tr.baseline {
		baseline[class] = ps
	}
	return baseline
}

// Registers returns the register vocabulary.
func (tr *Translator) Registers() *isa.RegisterFile {
	return tr.registers
}

// Template looks up the template of a mnemonic.
func (tr *Translator) Template(mnemonic string) (tmpl Template, ok bool) {
	tmpl, ok = tr.templates[strings.ToUpper(strings.TrimSpace(mnemonic))]
	return
}

// Mnemonics iterates every mnemonic with a template, then every mnemonic
// with a decomposition, each in sorted order.
func (tr *Translator) Mnemonics() iter.Seq[string] {
	return internal.IterSeqConcat(
		internal.IterSortedKeys(tr.templates),
		internal.IterSortedKeys(tr.decomps),
	)
}

// lower dispatches a narrow instruction to its template, or to emulation.
func (tr *Translator) lower(src isa.Source) (targets []isa.Target, level isa.Level, err error) {
	tmpl, ok := tr.templates[src.Key()]
	if !ok {
		return tr.emulate(src)
	}

	targets = []isa.Target{tmpl.Target()}
	level = tmpl.Level
	return
}

// TranslateNarrow lowers a 32-bit instruction.
func (tr *Translator) TranslateNarrow(src isa.Source) (targets []isa.Target, err error) {
	targets, _, err = tr.lower(src)
	return
}

// TranslateWide lowers a 64-bit instruction as its 32-bit form, with the
// lane count of every result scaled by the profile's WideLaneScale.
func (tr *Translator) TranslateWide(src isa.Source) (targets []isa.Target, err error) {
	targets, _, err = tr.lowerWide(src)
	return
}

func (tr *Translator) lowerWide(src isa.Source) (targets []isa.Target, level isa.Level, err error) {
	targets, level, err = tr.lower(src.Narrow())
	if err != nil {
		return
	}

	for n := range targets {
		targets[n] = targets[n].Scaled(tr.profile.WideLaneScale)
	}

	if level == isa.LEVEL_NATIVE {
		level = isa.LEVEL_TRANSLATED
	}

	return
}

// Translate lowers an instruction of either width and reports the level
// of the path taken. A malformed decomposition yields LEVEL_UNSUPPORTED
// and an error wrapping ErrMalformedOperands.
func (tr *Translator) Translate(src isa.Source) (res Result, err error) {
	res.Class = tr.ClassOf(src.Mnemonic)

	if src.Wide() {
		res.Targets, res.Level, err = tr.lowerWide(src)
	} else {
		res.Targets, res.Level, err = tr.lower(src)
	}

	if err != nil {
		res.Targets = nil
		res.Level = isa.LEVEL_UNSUPPORTED
	}

	return
}
