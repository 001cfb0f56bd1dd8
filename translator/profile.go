// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package translator

import (
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/lumen/internal"
	"github.com/ezrec/lumen/isa"
)

// Profile is the immutable configuration of a Translator: substrate
// constants, the template table, the decomposition table and the
// register vocabulary.
type Profile struct {
	DefaultWavelengthNm float64 // Channel of the generic fallback operation.
	WideLaneScale       uint    // Lane multiplier for 64-bit operands.
	FallbackOpcode      uint32  // Opcode of the generic fallback operation.
	FallbackTimePs      uint64  // Execution time of the generic fallback operation.

	Templates      map[string]Template      // Keyed by upper case mnemonic.
	Decompositions map[string]Decomposition // Keyed by upper case mnemonic.
	Registers      []isa.Register           // Register vocabulary.
}

// DefaultProfile returns a fresh copy of the built-in profile.
func DefaultProfile() (prof *Profile) {
	prof = &Profile{
		DefaultWavelengthNm: BAND_C_NM,
		WideLaneScale:       WIDE_LANE_SCALE,
		FallbackOpcode:      FALLBACK_OPCODE,
		FallbackTimePs:      FALLBACK_TIME_PS,
		Templates:           make(map[string]Template, len(defaultTemplates)),
		Decompositions:      make(map[string]Decomposition, len(defaultDecompositions)),
		Registers:           slices.Collect(isa.DefaultRegisterFile().All()),
	}

	for _, tmpl := range defaultTemplates {
		prof.Templates[tmpl.Mnemonic] = tmpl
	}

	for _, decomp := range defaultDecompositions {
		prof.Decompositions[decomp.Mnemonic] = decomp
	}

	return
}

// Clone returns a deep copy of the profile.
func (prof *Profile) Clone() *Profile {
	clone := *prof
	clone.Templates = maps.Clone(prof.Templates)
	clone.Decompositions = make(map[string]Decomposition, len(prof.Decompositions))
	for key, decomp := range prof.Decompositions {
		decomp.Steps = slices.Clone(decomp.Steps)
		clone.Decompositions[key] = decomp
	}
	clone.Registers = slices.Clone(prof.Registers)
	return &clone
}

// Baseline returns the fastest native execution time for each class that
// has at least one native template.
func (prof *Profile) Baseline() (baseline isa.Baseline) {
	baseline = isa.Baseline{}
	for _, tmpl := range prof.Templates {
		if tmpl.Level != isa.LEVEL_NATIVE {
			continue
		}
		ps, ok := baseline[tmpl.Class]
		if !ok || tmpl.ExecutionTimePs < ps {
			baseline[tmpl.Class] = tmpl.ExecutionTimePs
		}
	}
	return
}

// slowestNative returns the largest native template execution time.
func (prof *Profile) slowestNative() (ps uint64) {
	for _, tmpl := range prof.Templates {
		if tmpl.Level == isa.LEVEL_NATIVE && tmpl.ExecutionTimePs > ps {
			ps = tmpl.ExecutionTimePs
		}
	}
	return
}

// Validate checks the profile for internal consistency.
func (prof *Profile) Validate() (err error) {
	if prof.WideLaneScale == 0 {
		return &ErrProfile{Key: "wide_lane_scale", Err: ErrWideScale}
	}

	baseline := prof.Baseline()

	for key := range internal.IterSortedKeys(prof.Templates) {
		tmpl := prof.Templates[key]
		if key != strings.ToUpper(tmpl.Mnemonic) || !tmpl.Target().Valid() {
			return &ErrProfile{Key: key, Err: ErrTemplateInvalid}
		}
		if tmpl.Level != isa.LEVEL_NATIVE && tmpl.Level != isa.LEVEL_TRANSLATED {
			return &ErrProfile{Key: key, Err: ErrTemplateLevel}
		}
		if tmpl.OpcodeId == prof.FallbackOpcode {
			return &ErrProfile{Key: key, Err: ErrOpcodeReserved}
		}
		if tmpl.ExecutionTimePs < baseline.Ideal(tmpl.Class) {
			return &ErrProfile{Key: key, Err: ErrBaselineExceeded}
		}
	}

	for key := range internal.IterSortedKeys(prof.Decompositions) {
		decomp := prof.Decompositions[key]
		if key != strings.ToUpper(decomp.Mnemonic) || len(decomp.Steps) == 0 {
			return &ErrProfile{Key: key, Err: ErrTemplateInvalid}
		}
		if _, ok := prof.Templates[key]; ok {
			return &ErrProfile{Key: key, Err: ErrTemplateOverlap}
		}
		var ps uint64
		for _, step := range decomp.Steps {
			tmpl, ok := prof.Templates[strings.ToUpper(step.Mnemonic)]
			if !ok {
				return &ErrProfile{Key: key + "." + step.Mnemonic, Err: ErrStepUnknown}
			}
			ps += tmpl.ExecutionTimePs
		}
		if ps < baseline.Ideal(decomp.Class) {
			return &ErrProfile{Key: key, Err: ErrBaselineExceeded}
		}
	}

	if prof.FallbackTimePs == 0 || prof.FallbackTimePs < FALLBACK_MIN_FACTOR*prof.slowestNative() {
		return &ErrProfile{Key: "fallback_time_ps", Err: ErrFallbackTime}
	}

	_, err = isa.NewRegisterFile(prof.Registers...)
	if err != nil {
		return &ErrProfile{Key: "registers", Err: err}
	}

	return
}
