package trace

import (
	"errors"
	"fmt"

	"github.com/ezrec/lumen/l10n"
)

var f = l10n.From

var (
	ErrRecordInvalid = errors.New(f("trace record invalid"))
)

// ErrRow is an error in one row of a trace. Row 1 is the header.
type ErrRow struct {
	Row int
	Err error
}

func (err *ErrRow) Error() string {
	return f("trace row %d %v", err.Row, err.Err)
}

func (err *ErrRow) Unwrap() error {
	return err.Err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrRecordInvalid}, args...)...)
}
