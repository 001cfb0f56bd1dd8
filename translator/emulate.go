// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package translator

import (
	"github.com/ezrec/lumen/isa"
)

// Expand returns the primitive instructions a decomposed mnemonic is
// rewritten into. ok is false if the mnemonic has no decomposition.
func (tr *Translator) Expand(src isa.Source) (steps []isa.Source, ok bool, err error) {
	decomp, ok := tr.decomps[src.Key()]
	if !ok {
		return
	}

	steps, err = decomp.Expand(src)
	return
}

// Emulate lowers an instruction that has no template of its own, either
// through its decomposition or as the generic fallback operation.
func (tr *Translator) Emulate(src isa.Source) (targets []isa.Target, err error) {
	targets, _, err = tr.emulate(src)
	return
}

func (tr *Translator) emulate(src isa.Source) (targets []isa.Target, level isa.Level, err error) {
	steps, ok, err := tr.Expand(src)
	if err != nil {
		level = isa.LEVEL_UNSUPPORTED
		return
	}

	if !ok {
		targets = []isa.Target{tr.fallback(src)}
		level = isa.LEVEL_EMULATED
		return
	}

	// Steps only name templates; Validate guarantees it.
	mnemonic := src.Key()
	targets = make([]isa.Target, 0, len(steps))
	for _, step := range steps {
		target := tr.templates[step.Key()].Target()
		target.SourceMnemonic = mnemonic
		targets = append(targets, target)
	}
	level = isa.LEVEL_TRANSLATED

	return
}

// fallback is the generic, pessimistically timed operation.
func (tr *Translator) fallback(src isa.Source) isa.Target {
	return isa.Target{
		OpcodeId:        tr.profile.FallbackOpcode,
		WavelengthNm:    tr.profile.DefaultWavelengthNm,
		ParallelLanes:   1,
		SourceMnemonic:  src.Mnemonic,
		ExecutionTimePs: tr.profile.FallbackTimePs,
	}
}
