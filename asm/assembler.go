// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm reads textual listings of source instructions.
//
// One instruction per line:
//
//	[label:] MNEMONIC[.32|.64] [operand[, operand...]] [{hex bytes}] [; comment]
//
// Directives:
//
//	.bits 32|64      ; width of the following unsuffixed instructions
//	.equ NAME VALUE  ; replace the operand NAME with VALUE
//
// $(expr) is evaluated as a Starlark expression before the line is split.
// Integer equates and labels (as instruction indexes) are visible to the
// expression. The predefined equates are LINENO and BITS.
package asm

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/lumen/isa"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
	"BITS":   isa.WIDTH_32.String(),
}

var (
	parenRe  = regexp.MustCompile(`\$\([^\$]*\)`)
	opcodeRe = regexp.MustCompile(`\{([^}]*)\}\s*$`)
)

// Assembler is a single pass reader of instruction listings.
type Assembler struct {
	Verbose bool         // If set, verbosely logs the assembler actions.
	Source  []isa.Source // List of parsed instructions.

	predefine map[string]string
	Label     map[string]int    // Map of labels to instruction indexes.
	Equate    map[string]string // Map of equates.

	width isa.Width
}

// Predefine defines a new equate, or redefines an existing one, for
// every following Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// parenEval does $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for label, index := range asm.Label {
		pred[label] = starlark.MakeInt(index)
	}
	for key, str := range asm.Equate {
		v64, verr := asm.valueOf(str)
		if verr != nil {
			// Non-integer equates are usually register names.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseOpcode decodes a {hex bytes} annotation.
func parseOpcode(text string) (opcode []byte, err error) {
	digits := strings.Join(strings.Fields(text), "")
	if len(digits) == 0 {
		return
	}

	opcode, err = hex.DecodeString(digits)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrOpcodeBytes, err)
		opcode = nil
	}
	return
}

// splitWidth separates a .32 or .64 suffix from a mnemonic.
func splitWidth(word string, dflt isa.Width) (mnemonic string, width isa.Width) {
	mnemonic = word
	width = dflt
	for _, w := range []isa.Width{isa.WIDTH_32, isa.WIDTH_64} {
		suffix := "." + w.String()
		if len(word) > len(suffix) && strings.HasSuffix(word, suffix) {
			mnemonic = strings.TrimSuffix(word, suffix)
			width = w
			break
		}
	}
	return
}

// parseLine parses a single line, which has had its comment removed.
func (asm *Assembler) parseLine(line string, lineno int) (src isa.Source, ok bool, err error) {
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	// Trailing opcode annotation
	var opcode []byte
	annotated := false
	if m := opcodeRe.FindStringSubmatchIndex(line); m != nil {
		opcode, err = parseOpcode(line[m[2]:m[3]])
		if err != nil {
			return
		}
		annotated = true
		line = line[:m[0]]
	}

	// Do $() evaluations
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	words := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	if len(words) > 0 {
		switch words[0] {
		case ".equ":
			if len(words) != 3 || annotated {
				err = ErrEquateSyntax
				return
			}
			if _, dup := asm.Equate[words[1]]; dup {
				err = ErrEquateDuplicate
				return
			}
			asm.Equate[words[1]] = words[2]
			return
		case ".bits":
			if len(words) != 2 || annotated {
				err = ErrBitsSyntax
				return
			}
			var bits int64
			bits, err = asm.valueOf(words[1])
			if err != nil {
				return
			}
			switch isa.Width(bits) {
			case isa.WIDTH_32, isa.WIDTH_64:
				asm.width = isa.Width(bits)
				asm.Equate["BITS"] = asm.width.String()
			default:
				err = ErrBitsSyntax
			}
			return
		}
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if _, dup := asm.Label[label]; dup {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = len(asm.Source)
		words = words[1:]
	}

	if len(words) == 0 {
		if annotated {
			err = ErrMnemonicMissing
		}
		return
	}

	var operands []string
	if len(words) > 1 {
		operands = words[1:]
		for n, word := range operands {
			equate, found := asm.Equate[word]
			if found {
				operands[n] = equate
			}
		}
	}

	mnemonic, width := splitWidth(words[0], asm.width)

	src = isa.Source{
		Mnemonic: mnemonic,
		Operands: operands,
		Opcode:   opcode,
		Width:    width,
	}
	ok = true

	return
}

// Parse reads a listing. Labels, equates and the width are reset first.
func (asm *Assembler) Parse(input io.Reader) (srcs []isa.Source, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			srcs = nil
		}
	}()

	asm.Source = asm.Source[:0]
	asm.Label = make(map[string]int)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.width = isa.WIDTH_32

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.SplitN(text, ";", 2)
		line = strings.TrimSpace(text_comment[0])

		var src isa.Source
		var ok bool
		src, ok, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
		if ok {
			asm.Source = append(asm.Source, src)
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	srcs = slices.Clone(asm.Source)

	return
}

// Parse reads a listing with a fresh Assembler.
func Parse(input io.Reader) ([]isa.Source, error) {
	return (&Assembler{}).Parse(input)
}
