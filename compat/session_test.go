package compat

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/lumen/isa"
	"github.com/ezrec/lumen/metrics"
	"github.com/ezrec/lumen/trace"
	"github.com/ezrec/lumen/translator"
)

func src(mnemonic string, operands ...string) isa.Source {
	return isa.Source{Mnemonic: mnemonic, Operands: operands, Width: isa.WIDTH_32}
}

var scenario = []isa.Source{
	src("ADD", "r0", "r1"),
	src("MOV", "r2", "r0"),
	src("PUSH", "r1"),
	src("FOOBAR"),
}

func TestSession(t *testing.T) {
	assert := assert.New(t)

	sess, agg := NewSession(nil)
	assert.False(sess.Verbose)
	assert.Equal(translator.Default(), sess.Translator)
	assert.Equal(agg, sess.Recorder)
	assert.Nil(sess.Trace)
	assert.Equal(0, sess.Seq())
}

func TestSessionScenario(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sess, agg := NewSession(nil)
	results, err := sess.Run(scenario)
	require.NoError(err)
	require.Equal(4, len(results))

	assert.Equal(isa.LEVEL_NATIVE, results[0].Level)
	assert.Equal(isa.LEVEL_NATIVE, results[1].Level)
	assert.Equal(isa.LEVEL_TRANSLATED, results[2].Level)
	assert.Equal(isa.LEVEL_EMULATED, results[3].Level)

	total := 0
	for _, res := range results {
		total += len(res.Targets)
	}
	assert.Equal(5, total)

	snap := agg.Snapshot()
	assert.Equal(uint64(2), snap.Native)
	assert.Equal(uint64(1), snap.Translated)
	assert.Equal(uint64(1), snap.Emulated)
	assert.Equal(uint64(4), snap.Processed)
	assert.Equal(uint64(5), snap.Targets)
	assert.Equal(uint64(10+5+5+10+1000), snap.TotalTimePs)
	assert.Equal(uint64(8+5+5+8), snap.IdealTimePs)
	assert.InDelta(26.0/1030.0, snap.EfficiencyRatio, 1e-9)
	assert.Equal(4, sess.Seq())
}

func TestSessionEmpty(t *testing.T) {
	assert := assert.New(t)

	sess, agg := NewSession(nil)
	results, err := sess.Run(nil)
	assert.NoError(err)
	assert.Equal(0, len(results))

	snap := agg.Snapshot()
	assert.Equal(uint64(0), snap.Native+snap.Translated+snap.Emulated)
	assert.Equal(1.0, snap.EfficiencyRatio)
}

func TestSessionFault(t *testing.T) {
	assert := assert.New(t)

	sess, agg := NewSession(nil)
	srcs := []isa.Source{
		src("ADD", "r0", "r1"),
		src("PUSH"),
		src("XCHG", "r0"),
		src("MOV", "r0", "r1"),
	}

	results, err := sess.Run(srcs)
	assert.ErrorIs(err, translator.ErrMalformedOperands)

	var errInst *ErrInstruction
	if assert.ErrorAs(err, &errInst) {
		assert.Equal(1, errInst.Seq)
		assert.Equal("PUSH", errInst.Mnemonic)
	}

	assert.Equal(isa.LEVEL_UNSUPPORTED, results[1].Level)
	assert.Nil(results[1].Targets)
	assert.Equal(isa.LEVEL_UNSUPPORTED, results[2].Level)
	assert.Equal(isa.LEVEL_NATIVE, results[3].Level)

	snap := agg.Snapshot()
	assert.Equal(uint64(2), snap.Native)
	assert.Equal(uint64(2), snap.Processed)
	assert.Equal(uint64(2), snap.Faults)
}

func TestSessionComposable(t *testing.T) {
	assert := assert.New(t)

	a := []isa.Source{src("MUL", "r0", "r1"), src("POP", "r3"), src("NOP")}
	b := []isa.Source{src("JMP", "top"), {Mnemonic: "ADD", Operands: []string{"r0", "r1"}, Width: isa.WIDTH_64}}

	split, splitAgg := NewSession(nil)
	_, err := split.Run(a)
	assert.NoError(err)
	_, err = split.Run(b)
	assert.NoError(err)

	whole, wholeAgg := NewSession(nil)
	_, err = whole.Run(slices.Concat(a, b))
	assert.NoError(err)

	assert.Equal(wholeAgg.Snapshot(), splitAgg.Snapshot())

	// Separate aggregators combine the same way.
	first, firstAgg := NewSession(nil)
	second, secondAgg := NewSession(nil)
	_, _ = first.Run(a)
	_, _ = second.Run(b)
	sum := firstAgg.Snapshot().Add(secondAgg.Snapshot())
	assert.Equal(wholeAgg.Snapshot().TotalTimePs, sum.TotalTimePs)
	assert.InDelta(wholeAgg.Snapshot().EfficiencyRatio, sum.EfficiencyRatio, 1e-12)
}

func TestRunParallel(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var srcs []isa.Source
	for n := range 200 {
		switch n % 7 {
		case 0:
			srcs = append(srcs, src("PUSH", "r1"))
		case 1:
			srcs = append(srcs, src("DIV", "r0", "r2"))
		case 2:
			srcs = append(srcs, isa.Source{Mnemonic: "MOV", Operands: []string{"r0", "r1"}, Width: isa.WIDTH_64})
		case 3:
			srcs = append(srcs, src("POP"))
		case 4:
			srcs = append(srcs, src("CPUID"))
		case 5:
			srcs = append(srcs, src("xchg", "r0", "r1"))
		default:
			srcs = append(srcs, src("jmp", "loop"))
		}
	}

	var serialTrace, parallelTrace bytes.Buffer

	serial, serialAgg := NewSession(nil)
	serial.Trace = trace.NewWriter(&serialTrace)
	serialResults, serialErr := serial.Run(srcs)
	require.NoError(serial.Trace.Flush())

	parallel, parallelAgg := NewSession(nil)
	parallel.Trace = trace.NewWriter(&parallelTrace)
	parallelResults, parallelErr := parallel.RunParallel(context.Background(), srcs, 8)
	require.NoError(parallel.Trace.Flush())

	assert.Equal(serialResults, parallelResults)
	assert.Equal(serialErr.Error(), parallelErr.Error())
	assert.ErrorIs(parallelErr, translator.ErrMalformedOperands)
	assert.Equal(serialAgg.Snapshot(), parallelAgg.Snapshot())
	assert.Equal(serialTrace.String(), parallelTrace.String())
	assert.Equal(len(srcs), parallel.Seq())
}

func TestRunParallelErrors(t *testing.T) {
	assert := assert.New(t)

	sess, agg := NewSession(nil)

	_, err := sess.RunParallel(context.Background(), scenario, 0)
	assert.ErrorIs(err, ErrWorkers)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := sess.RunParallel(ctx, scenario, 2)
	assert.ErrorIs(err, context.Canceled)
	assert.Nil(results)

	assert.Equal(uint64(0), agg.Snapshot().Processed)
	assert.Equal(0, sess.Seq())
}

func TestSessionTraceReplay(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buff bytes.Buffer

	sess, agg := NewSession(nil)
	sess.Trace = trace.NewWriter(&buff)
	_, err := sess.Run(append(slices.Clone(scenario), src("POP"), src("SHL", "r0", "1"), src(""), src("  ")))
	assert.ErrorIs(err, translator.ErrMalformedOperands)
	require.NoError(sess.Trace.Flush())

	tr := sess.Translator
	snap, err := trace.Replay(&buff, tr.ClassOf, tr.Baseline())
	require.NoError(err)
	assert.Equal(agg.Snapshot(), snap)
	assert.Equal(uint64(1), snap.Faults)
	assert.Equal(uint64(3), snap.Emulated)
}

func TestSessionVerbose(t *testing.T) {
	assert := assert.New(t)

	var buff bytes.Buffer
	log.SetOutput(&buff)
	defer log.SetOutput(os.Stderr)

	sess, _ := NewSession(nil)
	sess.Verbose = true
	_, err := sess.Run([]isa.Source{src("ADD", "r0", "1"), src("POP")})
	assert.Error(err)

	text := buff.String()
	assert.Contains(text, "0: ADD r0@1530.00nm, 1 => native arithmetic (1)")
	assert.Contains(text, "1: POP")
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(level isa.Level, class isa.Class, produced []isa.Target) error {
	args := m.Called(level, class, produced)
	return args.Error(0)
}

func (m *mockRecorder) Fault() {
	m.Called()
}

func TestSessionRecorder(t *testing.T) {
	assert := assert.New(t)

	rec := &mockRecorder{}
	rec.On("Record", isa.LEVEL_NATIVE, isa.CLASS_ARITHMETIC, mock.Anything).Return(nil).Once()
	rec.On("Record", isa.LEVEL_TRANSLATED, isa.CLASS_MOVE, mock.MatchedBy(func(targets []isa.Target) bool {
		return len(targets) == 2 && targets[0].SourceMnemonic == "POP"
	})).Return(nil).Once()
	rec.On("Record", isa.LEVEL_EMULATED, isa.CLASS_ARITHMETIC, mock.Anything).Return(metrics.ErrCollectorClosed).Once()
	rec.On("Fault").Return().Once()

	sess := &Session{
		Translator: translator.Default(),
		Recorder:   rec,
	}

	_, err := sess.Process(src("AND", "r0", "r1"))
	assert.NoError(err)
	_, err = sess.Process(src("pop", "r0"))
	assert.NoError(err)
	_, err = sess.Process(src("PUSH"))
	assert.ErrorIs(err, translator.ErrMalformedOperands)
	_, err = sess.Process(src("HLT"))
	assert.ErrorIs(err, metrics.ErrCollectorClosed)

	var errInst *ErrInstruction
	if assert.True(errors.As(err, &errInst)) {
		assert.Equal(3, errInst.Seq)
	}

	rec.AssertExpectations(t)
}

func TestSessionCollector(t *testing.T) {
	assert := assert.New(t)

	tr := translator.Default()
	agg := metrics.NewAggregator(tr.Baseline())
	collector := metrics.NewCollector(agg, 16)

	sess := &Session{
		Translator: tr,
		Recorder:   collector,
	}
	_, err := sess.RunParallel(context.Background(), scenario, 4)
	assert.NoError(err)
	collector.Close()

	expect, expectAgg := NewSession(nil)
	_, _ = expect.Run(scenario)
	assert.Equal(expectAgg.Snapshot(), agg.Snapshot())
}

func FuzzSessionCounts(f *testing.F) {
	mnemonics := slices.Collect(translator.Default().Mnemonics())
	mnemonics = append(mnemonics, "FOOBAR", "nop", "")

	f.Add([]byte{0, 1, 2})
	f.Add([]byte{})
	f.Add([]byte{0xff, 0x80, 0x81, 0x7f})

	f.Fuzz(func(t *testing.T, seq []byte) {
		assert := assert.New(t)

		var srcs []isa.Source
		for _, b := range seq {
			s := src(mnemonics[int(b&0x7f)%len(mnemonics)], "r0", "r1")
			if b&0x80 != 0 {
				s.Width = isa.WIDTH_64
			}
			srcs = append(srcs, s)
		}

		sess, agg := NewSession(nil)
		results, err := sess.Run(srcs)
		assert.NoError(err)

		snap := agg.Snapshot()
		assert.Equal(uint64(len(srcs)), snap.Native+snap.Translated+snap.Emulated)
		assert.Equal(uint64(0), snap.Faults)
		for _, res := range results {
			assert.NotEmpty(res.Targets)
		}
		assert.LessOrEqual(snap.EfficiencyRatio, 1.0)
	})
}
