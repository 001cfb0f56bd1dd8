package compat

import (
	"errors"

	"github.com/ezrec/lumen/l10n"
)

var f = l10n.From

var (
	ErrWorkers = errors.New(f("workers must be positive"))
)

// ErrInstruction indicates the source instruction an error belongs to.
type ErrInstruction struct {
	Seq      int
	Mnemonic string
	Err      error
}

func (err *ErrInstruction) Error() string {
	return f("instruction %d (%v) %v", err.Seq, err.Mnemonic, err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}
