package translator

import (
	"errors"
	"fmt"

	"github.com/ezrec/lumen/l10n"
)

var f = l10n.From

var (
	// Translation errors
	ErrMalformedOperands = errors.New(f("malformed operand list for decomposition"))

	// Profile errors
	ErrTemplateInvalid  = errors.New(f("template invalid"))
	ErrTemplateLevel    = errors.New(f("template level must be native or translated"))
	ErrTemplateOverlap  = errors.New(f("template set overlap"))
	ErrOpcodeReserved   = errors.New(f("opcode reserved for the fallback"))
	ErrBaselineExceeded = errors.New(f("template faster than native baseline"))
	ErrStepUnknown      = errors.New(f("decomposition step references unknown template"))
	ErrFallbackTime     = errors.New(f("fallback time too small"))
	ErrWideScale        = errors.New(f("wide lane scale must be positive"))
	ErrValueType        = errors.New(f("value has wrong type"))
)

// ErrDecomposition is returned when a source instruction has fewer
// operands than its decomposition refers to.
type ErrDecomposition struct {
	Mnemonic string
	Want     int
	Got      int
}

func (err *ErrDecomposition) Error() string {
	return fmt.Sprintf("%v: %v", ErrMalformedOperands, f("%v wants %d operands, got %d", err.Mnemonic, err.Want, err.Got))
}

func (err *ErrDecomposition) Unwrap() error {
	return ErrMalformedOperands
}

// ErrProfile locates a profile error at a setting or table key.
type ErrProfile struct {
	Key string
	Err error
}

func (err *ErrProfile) Error() string {
	return f("profile %v: %v", err.Key, err.Err)
}

func (err *ErrProfile) Unwrap() error {
	return err.Err
}
