package isa

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		Level Level
		Name  string
	}{
		{LEVEL_NATIVE, "native"},
		{LEVEL_TRANSLATED, "translated"},
		{LEVEL_EMULATED, "emulated"},
		{LEVEL_UNSUPPORTED, "unsupported"},
		{Level(9), "Level(9)"},
	}

	for _, testcase := range table {
		assert.Equal(testcase.Name, testcase.Level.String())
	}

	for _, level := range Levels {
		parsed, err := ParseLevel(level.String())
		assert.NoError(err)
		assert.Equal(level, parsed)
	}

	_, err := ParseLevel("sideways")
	assert.True(errors.Is(err, ErrLevelUnknown))

	level, err := ParseLevel(" Native ")
	assert.NoError(err)
	assert.Equal(LEVEL_NATIVE, level)
}

func TestClass(t *testing.T) {
	assert := assert.New(t)

	for _, class := range Classes {
		parsed, err := ParseClass(class.String())
		assert.NoError(err)
		assert.Equal(class, parsed)
	}

	_, err := ParseClass("vector")
	assert.ErrorIs(err, ErrClassUnknown)
	assert.Equal("Class(7)", Class(7).String())
}

func TestBaseline(t *testing.T) {
	assert := assert.New(t)

	b := Baseline{CLASS_ARITHMETIC: 8, CLASS_MOVE: 5}
	assert.Equal(uint64(8), b.Ideal(CLASS_ARITHMETIC))
	assert.Equal(uint64(5), b.Ideal(CLASS_MOVE))
	// No native control template: fastest overall.
	assert.Equal(uint64(5), b.Ideal(CLASS_CONTROL))
	assert.Equal(uint64(0), Baseline{}.Ideal(CLASS_MOVE))
}

func TestSource(t *testing.T) {
	assert := assert.New(t)

	src := Source{
		Mnemonic: " push ",
		Operands: []string{"r1"},
		Opcode:   []byte{0x50, 0x41},
		Width:    WIDTH_64,
	}

	assert.Equal("PUSH", src.Key())
	assert.True(src.Wide())

	narrow := src.Narrow()
	assert.False(narrow.Wide())
	assert.Equal(WIDTH_32, narrow.Width)
	assert.Equal(src.Mnemonic, narrow.Mnemonic)
	assert.Equal(src.Operands, narrow.Operands)

	// The copy does not alias the original.
	narrow.Operands[0] = "r2"
	assert.Equal("r1", src.Operands[0])

	assert.False(Source{Mnemonic: "ADD"}.Wide())
	assert.Equal("ADD r0, r1", Source{Mnemonic: "ADD", Operands: []string{"r0", "r1"}}.String())
	assert.Equal("MOV.64 r0 {48 89}", Source{Mnemonic: "MOV", Operands: []string{"r0"}, Opcode: []byte{0x48, 0x89}, Width: WIDTH_64}.String())
	assert.Equal("64", WIDTH_64.String())
	assert.Equal("32", WIDTH_32.String())
	assert.Equal("Width(16)", Width(16).String())
}

func TestTarget(t *testing.T) {
	assert := assert.New(t)

	tgt := Target{OpcodeId: 1, WavelengthNm: 1550, ParallelLanes: 64, ExecutionTimePs: 10}
	assert.True(tgt.Valid())
	assert.False(Target{ParallelLanes: 0, ExecutionTimePs: 1}.Valid())
	assert.False(Target{ParallelLanes: 1, ExecutionTimePs: 0}.Valid())

	wide := tgt.Scaled(2)
	assert.Equal(uint(128), wide.ParallelLanes)
	assert.Equal(uint(64), tgt.ParallelLanes)
	assert.Equal(tgt.ExecutionTimePs, wide.ExecutionTimePs)
	assert.Equal(tgt.WavelengthNm, wide.WavelengthNm)

	assert.Equal(uint64(25), TotalTimePs([]Target{{ExecutionTimePs: 10}, {ExecutionTimePs: 15}}))
	assert.Equal(uint64(0), TotalTimePs(nil))
}

func TestRegisterFile(t *testing.T) {
	assert := assert.New(t)

	rf := DefaultRegisterFile()
	assert.Equal(11, rf.Len())

	sp, ok := rf.Lookup("sp")
	assert.True(ok)
	assert.Equal("SP", sp.Name)

	_, ok = rf.Lookup("r99")
	assert.False(ok)

	waves := map[float64]bool{}
	for reg := range rf.All() {
		assert.False(waves[reg.WavelengthNm], reg.Name)
		waves[reg.WavelengthNm] = true
	}

	_, err := NewRegisterFile(
		Register{Name: "A", WavelengthNm: 1550},
		Register{Name: "B", WavelengthNm: 1550},
	)
	assert.ErrorIs(err, ErrWavelengthDuplicate)

	_, err = NewRegisterFile(
		Register{Name: "A", WavelengthNm: 1550},
		Register{Name: "a", WavelengthNm: 1551},
	)
	assert.ErrorIs(err, ErrRegisterDuplicate)

	empty, err := NewRegisterFile()
	assert.NoError(err)
	assert.Equal(0, empty.Len())
	assert.Empty(slices.Collect(empty.All()))
}

func TestRecords(t *testing.T) {
	assert := assert.New(t)

	targets := []Target{
		{OpcodeId: 3, WavelengthNm: 1310, ParallelLanes: 64, ExecutionTimePs: 5},
		{OpcodeId: 1, WavelengthNm: 1550, ParallelLanes: 64, ExecutionTimePs: 10},
	}

	records := Records(7, "PUSH", LEVEL_TRANSLATED, targets)
	assert.Equal([]Record{
		{Seq: 7, Mnemonic: "PUSH", Level: LEVEL_TRANSLATED, ParallelLanes: 64, WavelengthNm: 1310, ExecutionTimePs: 5},
		{Seq: 7, Mnemonic: "PUSH", Level: LEVEL_TRANSLATED, ParallelLanes: 64, WavelengthNm: 1550, ExecutionTimePs: 10},
	}, records)
	assert.Empty(Records(0, "NOP", LEVEL_NATIVE, nil))
}
