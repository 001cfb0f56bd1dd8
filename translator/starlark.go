// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package translator

import (
	"fmt"
	"math"
	"os"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/lumen/isa"
)

// Profile scripts are Starlark files evaluated over the default profile.
// Recognized globals:
//
//	default_wavelength_nm = 1550.12
//	wide_lane_scale = 2
//	fallback_opcode = 0xff
//	fallback_time_ps = 1000
//	templates = {
//	    "MUL": {"opcode": 0x20, "wavelength": dwdm(28), "lanes": 32, "time": 40,
//	            "level": TRANSLATED, "class": ARITHMETIC},
//	    "DIV": None,  # remove
//	}
//	decompositions = {
//	    "NEG": {"class": ARITHMETIC, "steps": [("XOR", "$0", "-1"), ("ADD", "$0", "1")]},
//	}
//	registers = [("R0", dwdm(0), 64), ...]
//
// Table entries replace or add to the defaults; None removes an entry.
// The registers list, when present, replaces the default register file.

// predeclared returns the names visible to a profile script.
func predeclared() starlark.StringDict {
	dict := starlark.StringDict{
		"dwdm": starlark.NewBuiltin("dwdm", starlarkDwdm),
	}
	for _, level := range []isa.Level{isa.LEVEL_NATIVE, isa.LEVEL_TRANSLATED} {
		dict[strings.ToUpper(level.String())] = starlark.String(level.String())
	}
	for _, class := range isa.Classes {
		dict[strings.ToUpper(class.String())] = starlark.String(class.String())
	}
	return dict
}

// starlarkDwdm returns the wavelength of a DWDM grid channel.
func starlarkDwdm(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var channel int
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &channel)
	if err != nil {
		return nil, err
	}
	return starlark.Float(isa.GRID_BASE_NM + isa.GRID_SPACING_NM*float64(channel)), nil
}

// LoadProfile reads a profile script from a file.
func LoadProfile(path string) (prof *Profile, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	return ParseProfile(path, data)
}

// ParseProfile evaluates a profile script. src may be a string, []byte
// or io.Reader.
func ParseProfile(filename string, src any) (prof *Profile, err error) {
	thread := starlark.Thread{Name: filename}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, &thread, filename, src, predeclared())
	if err != nil {
		return
	}

	prof = DefaultProfile()
	err = prof.apply(globals)
	if err != nil {
		prof = nil
		return
	}

	err = prof.Validate()
	if err != nil {
		prof = nil
	}

	return
}

// apply merges script globals into the profile.
func (prof *Profile) apply(globals starlark.StringDict) (err error) {
	if value, ok := globals["default_wavelength_nm"]; ok {
		prof.DefaultWavelengthNm, err = toFloat("default_wavelength_nm", value)
		if err != nil {
			return
		}
	}

	if value, ok := globals["wide_lane_scale"]; ok {
		var scale uint64
		scale, err = toUint("wide_lane_scale", value)
		if err != nil {
			return
		}
		prof.WideLaneScale = uint(scale)
	}

	if value, ok := globals["fallback_opcode"]; ok {
		prof.FallbackOpcode, err = toOpcode("fallback_opcode", value)
		if err != nil {
			return
		}
	}

	if value, ok := globals["fallback_time_ps"]; ok {
		prof.FallbackTimePs, err = toUint("fallback_time_ps", value)
		if err != nil {
			return
		}
	}

	if value, ok := globals["templates"]; ok {
		err = prof.applyTemplates(value)
		if err != nil {
			return
		}
	}

	if value, ok := globals["decompositions"]; ok {
		err = prof.applyDecompositions(value)
		if err != nil {
			return
		}
	}

	if value, ok := globals["registers"]; ok {
		err = prof.applyRegisters(value)
		if err != nil {
			return
		}
	}

	return
}

func (prof *Profile) applyTemplates(value starlark.Value) (err error) {
	dict, ok := value.(*starlark.Dict)
	if !ok {
		return &ErrProfile{Key: "templates", Err: ErrValueType}
	}

	for _, item := range dict.Items() {
		var key string
		key, err = toString("templates", item[0])
		if err != nil {
			return
		}
		key = strings.ToUpper(key)

		if item[1] == starlark.None {
			delete(prof.Templates, key)
			continue
		}

		fields, ok := item[1].(*starlark.Dict)
		if !ok {
			return &ErrProfile{Key: key, Err: ErrValueType}
		}

		tmpl := Template{Mnemonic: key}

		var lanes uint64
		var level, class string
		tmpl.OpcodeId, err = toOpcode(key+".opcode", field(fields, "opcode"))
		if err == nil {
			tmpl.WavelengthNm, err = toFloat(key+".wavelength", field(fields, "wavelength"))
		}
		if err == nil {
			lanes, err = toUint(key+".lanes", field(fields, "lanes"))
		}
		if err == nil {
			tmpl.ExecutionTimePs, err = toUint(key+".time", field(fields, "time"))
		}
		if err == nil {
			level, err = toString(key+".level", field(fields, "level"))
		}
		if err == nil {
			class, err = toString(key+".class", field(fields, "class"))
		}
		if err != nil {
			return
		}

		tmpl.ParallelLanes = uint(lanes)

		tmpl.Level, err = isa.ParseLevel(level)
		if err != nil {
			return &ErrProfile{Key: key + ".level", Err: err}
		}
		tmpl.Class, err = isa.ParseClass(class)
		if err != nil {
			return &ErrProfile{Key: key + ".class", Err: err}
		}

		prof.Templates[key] = tmpl
	}

	return
}

func (prof *Profile) applyDecompositions(value starlark.Value) (err error) {
	dict, ok := value.(*starlark.Dict)
	if !ok {
		return &ErrProfile{Key: "decompositions", Err: ErrValueType}
	}

	for _, item := range dict.Items() {
		var key string
		key, err = toString("decompositions", item[0])
		if err != nil {
			return
		}
		key = strings.ToUpper(key)

		if item[1] == starlark.None {
			delete(prof.Decompositions, key)
			continue
		}

		fields, ok := item[1].(*starlark.Dict)
		if !ok {
			return &ErrProfile{Key: key, Err: ErrValueType}
		}

		decomp := Decomposition{Mnemonic: key}

		var class string
		class, err = toString(key+".class", field(fields, "class"))
		if err != nil {
			return
		}
		decomp.Class, err = isa.ParseClass(class)
		if err != nil {
			return &ErrProfile{Key: key + ".class", Err: err}
		}

		steps, ok := field(fields, "steps").(starlark.Indexable)
		if !ok {
			return &ErrProfile{Key: key + ".steps", Err: ErrValueType}
		}
		for n := range steps.Len() {
			var words []string
			words, err = toStrings(fmt.Sprintf("%v.steps[%d]", key, n), steps.Index(n))
			if err != nil {
				return
			}
			if len(words) == 0 {
				return &ErrProfile{Key: fmt.Sprintf("%v.steps[%d]", key, n), Err: ErrTemplateInvalid}
			}
			decomp.Steps = append(decomp.Steps, Step{
				Mnemonic: strings.ToUpper(words[0]),
				Operands: words[1:],
			})
		}

		prof.Decompositions[key] = decomp
	}

	return
}

func (prof *Profile) applyRegisters(value starlark.Value) (err error) {
	list, ok := value.(starlark.Indexable)
	if !ok {
		return &ErrProfile{Key: "registers", Err: ErrValueType}
	}

	regs := make([]isa.Register, 0, list.Len())
	for n := range list.Len() {
		key := fmt.Sprintf("registers[%d]", n)
		entry, ok := list.Index(n).(starlark.Tuple)
		if !ok || len(entry) != 3 {
			return &ErrProfile{Key: key, Err: ErrValueType}
		}

		var reg isa.Register
		var bits uint64
		reg.Name, err = toString(key, entry[0])
		if err == nil {
			reg.WavelengthNm, err = toFloat(key, entry[1])
		}
		if err == nil {
			bits, err = toUint(key, entry[2])
		}
		if err != nil {
			return
		}
		reg.CapacityBits = uint(bits)

		regs = append(regs, reg)
	}

	prof.Registers = regs
	return
}

// field returns a dict entry, or None if missing.
func field(dict *starlark.Dict, name string) starlark.Value {
	value, found, err := dict.Get(starlark.String(name))
	if err != nil || !found {
		return starlark.None
	}
	return value
}

func toString(key string, value starlark.Value) (str string, err error) {
	str, ok := starlark.AsString(value)
	if !ok {
		err = &ErrProfile{Key: key, Err: ErrValueType}
	}
	return
}

func toStrings(key string, value starlark.Value) (strs []string, err error) {
	list, ok := value.(starlark.Indexable)
	if _, is_str := value.(starlark.String); is_str || !ok {
		err = &ErrProfile{Key: key, Err: ErrValueType}
		return
	}
	for n := range list.Len() {
		var str string
		str, err = toString(key, list.Index(n))
		if err != nil {
			return
		}
		strs = append(strs, str)
	}
	return
}

func toUint(key string, value starlark.Value) (u uint64, err error) {
	i, ok := value.(starlark.Int)
	if ok {
		u, ok = i.Uint64()
	}
	if !ok {
		err = &ErrProfile{Key: key, Err: ErrValueType}
	}
	return
}

// toOpcode is toUint limited to the 32 bit opcode space.
func toOpcode(key string, value starlark.Value) (opcode uint32, err error) {
	u, err := toUint(key, value)
	if err != nil {
		return
	}
	if u > math.MaxUint32 {
		err = &ErrProfile{Key: key, Err: ErrValueType}
		return
	}
	opcode = uint32(u)
	return
}

func toFloat(key string, value starlark.Value) (v float64, err error) {
	switch x := value.(type) {
	case starlark.Int:
		v = float64(x.Float())
	case starlark.Float:
		v = float64(x)
	default:
		err = &ErrProfile{Key: key, Err: ErrValueType}
	}
	return
}
