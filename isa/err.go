package isa

import (
	"errors"

	"github.com/ezrec/lumen/l10n"
)

var f = l10n.From

var (
	ErrLevelUnknown        = errors.New(f("level unknown"))
	ErrClassUnknown        = errors.New(f("class unknown"))
	ErrRegisterDuplicate   = errors.New(f("register name duplicated"))
	ErrWavelengthDuplicate = errors.New(f("register wavelength duplicated"))
)
