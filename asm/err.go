package asm

import (
	"errors"

	"github.com/ezrec/lumen/l10n"
)

var f = l10n.From

var (
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrBitsSyntax      = errors.New(f(".bits syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeBytes     = errors.New(f("opcode bytes invalid"))
	ErrMnemonicMissing = errors.New(f("mnemonic missing"))
)

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
