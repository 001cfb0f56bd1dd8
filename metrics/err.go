package metrics

import (
	"errors"

	"github.com/ezrec/lumen/l10n"
)

var f = l10n.From

var (
	ErrLevelUnrecorded = errors.New(f("level not recordable"))
	ErrCollectorClosed = errors.New(f("collector closed"))
)
