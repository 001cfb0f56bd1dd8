// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package compat runs streams of source instructions through a
// translator and records every outcome.
package compat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/lumen/isa"
	"github.com/ezrec/lumen/metrics"
	"github.com/ezrec/lumen/trace"
	"github.com/ezrec/lumen/translator"
)

// Session state. Translator + recorder + optional trace.
//
// A Session numbers the instructions it processes and is not safe for
// concurrent use; RunParallel spreads the translation work itself.
type Session struct {
	Verbose    bool                   // If set, logs every outcome.
	Translator *translator.Translator // Lowering tables.
	Recorder   metrics.Recorder       // Receives every outcome.
	Trace      *trace.Writer          // If set, receives every target.

	seq int
}

// NewSession creates a session recording into a fresh Aggregator, which
// is also returned.
func NewSession(tr *translator.Translator) (sess *Session, agg *metrics.Aggregator) {
	if tr == nil {
		tr = translator.Default()
	}

	agg = metrics.NewAggregator(tr.Baseline())
	sess = &Session{
		Translator: tr,
		Recorder:   agg,
	}

	return
}

// Seq returns the sequence number the next instruction will get.
func (sess *Session) Seq() int {
	return sess.seq
}

// Process translates and records one instruction. A malformed
// decomposition is counted as a fault and returned as an
// *ErrInstruction; the session remains usable.
func (sess *Session) Process(src isa.Source) (res translator.Result, err error) {
	res, err = sess.Translator.Translate(src)
	err = sess.record(src, res, err)
	return
}

// record commits one outcome, in sequence.
func (sess *Session) record(src isa.Source, res translator.Result, terr error) (err error) {
	seq := sess.seq
	sess.seq++

	mnemonic := src.Key()

	defer func() {
		if err != nil {
			err = &ErrInstruction{Seq: seq, Mnemonic: src.Mnemonic, Err: err}
		}
	}()

	if terr != nil {
		if sess.Verbose {
			log.Printf("%d: %v: %v", seq, src, terr)
		}
		sess.Recorder.Fault()
		if sess.Trace != nil {
			werr := sess.Trace.Write(isa.Record{Seq: seq, Mnemonic: mnemonic, Level: isa.LEVEL_UNSUPPORTED})
			if werr != nil {
				err = errors.Join(terr, werr)
				return
			}
		}
		err = terr
		return
	}

	if sess.Verbose {
		log.Printf("%d: %v => %v %v (%d)", seq, sess.annotate(src), res.Level, res.Class, len(res.Targets))
		for _, target := range res.Targets {
			log.Printf("%d:   %v", seq, target)
		}
	}

	err = sess.Recorder.Record(res.Level, res.Class, res.Targets)
	if err != nil {
		return
	}

	if sess.Trace != nil {
		err = sess.Trace.Write(isa.Records(seq, mnemonic, res.Level, res.Targets)...)
		if err != nil {
			return
		}
	}

	return
}

// annotate renders an instruction with the wavelength of every register
// operand.
func (sess *Session) annotate(src isa.Source) string {
	regs := sess.Translator.Registers()

	words := make([]string, 0, len(src.Operands))
	for _, op := range src.Operands {
		reg, ok := regs.Lookup(op)
		if ok {
			op = fmt.Sprintf("%v@%.2fnm", op, reg.WavelengthNm)
		}
		words = append(words, op)
	}

	text := src.Mnemonic
	if src.Wide() {
		text += ".64"
	}
	if len(words) > 0 {
		text += " " + strings.Join(words, ", ")
	}

	return text
}

// Run processes instructions in order. Faults do not stop the run; the
// returned error joins every *ErrInstruction.
func (sess *Session) Run(srcs []isa.Source) (results []translator.Result, err error) {
	results = make([]translator.Result, len(srcs))

	var errs []error
	for n, src := range srcs {
		var ierr error
		results[n], ierr = sess.Process(src)
		if ierr != nil {
			errs = append(errs, ierr)
		}
	}

	err = errors.Join(errs...)
	return
}

// RunParallel translates instructions on up to workers goroutines, then
// records the outcomes in input order, so the results and the recorded
// metrics match those of Run. Cancelling ctx stops the translation and
// nothing is recorded.
func (sess *Session) RunParallel(ctx context.Context, srcs []isa.Source, workers int) (results []translator.Result, err error) {
	if workers < 1 {
		err = ErrWorkers
		return
	}

	results = make([]translator.Result, len(srcs))
	terrs := make([]error, len(srcs))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for n, src := range srcs {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[n], terrs[n] = sess.Translator.Translate(src)
			return nil
		})
	}

	err = group.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		results = nil
		return
	}

	var errs []error
	for n, src := range srcs {
		rerr := sess.record(src, results[n], terrs[n])
		if rerr != nil {
			errs = append(errs, rerr)
		}
	}

	err = errors.Join(errs...)
	return
}
