// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/tebeka/atexit"

	"github.com/ezrec/lumen/asm"
	"github.com/ezrec/lumen/compat"
	"github.com/ezrec/lumen/l10n"
	"github.com/ezrec/lumen/trace"
	"github.com/ezrec/lumen/translator"
)

func main() {
	var compile string
	var profile string
	var tracefile string
	var replay string
	var workers int
	var verbose bool

	flag.StringVar(&compile, "c", "-", "Listing to translate")
	flag.StringVar(&profile, "p", "", "Starlark profile to load")
	flag.StringVar(&tracefile, "t", "", "CSV trace output")
	flag.StringVar(&replay, "r", "", "CSV trace to replay, do not translate")
	flag.IntVar(&workers, "j", runtime.NumCPU(), "Translation workers")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if verbose {
		log.Printf("%v: messages in %v", os.Args[0], l10n.Language())
	}

	tr := translator.Default()
	if len(profile) != 0 {
		prof, err := translator.LoadProfile(profile)
		if err != nil {
			fatalf("%v: %v", profile, err)
		}
		tr, err = translator.NewTranslator(prof)
		if err != nil {
			fatalf("%v: %v", profile, err)
		}
	}

	// Offline metrics from an earlier trace.
	if len(replay) != 0 {
		inf, err := os.Open(replay)
		if err != nil {
			fatalf("%v: %v", replay, err)
		}
		atexit.Register(func() { inf.Close() })

		snap, err := trace.Replay(inf, tr.ClassOf, tr.Baseline())
		if err != nil {
			fatalf("%v: %v", replay, err)
		}
		fmt.Println(snap.Table())
		atexit.Exit(0)
	}

	var input io.Reader = os.Stdin
	if compile != "-" {
		inf, err := os.Open(compile)
		if err != nil {
			fatalf("%v: %v", compile, err)
		}
		atexit.Register(func() { inf.Close() })
		input = inf
	}

	assembler := &asm.Assembler{Verbose: verbose}
	srcs, err := assembler.Parse(input)
	if err != nil {
		fatalf("%v: %v", compile, err)
	}

	sess, agg := compat.NewSession(tr)
	sess.Verbose = verbose

	if len(tracefile) != 0 {
		ouf, err := os.Create(tracefile)
		if err != nil {
			fatalf("%v: %v", tracefile, err)
		}
		sess.Trace = trace.NewWriter(ouf)
		atexit.Register(func() {
			err := sess.Trace.Flush()
			if err != nil {
				log.Printf("%v: %v", tracefile, err)
			}
			ouf.Close()
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	atexit.Register(stop)

	_, err = sess.RunParallel(ctx, srcs, workers)
	if err != nil {
		var errInst *compat.ErrInstruction
		if !errors.As(err, &errInst) {
			fatalf("%v: %v", compile, err)
		}
		// Faults are counted; report them and carry on.
		log.Print(err)
	}

	fmt.Println(agg.Snapshot().Table())
	atexit.Exit(0)
}

// fatalf logs, runs the exit handlers, and exits with status 1.
func fatalf(format string, args ...any) {
	log.Printf(format, args...)
	atexit.Exit(1)
}
