// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"strings"
)

// Level is the compatibility level of a completed translation.
type Level int

//go:generate go tool stringer -linecomment -type=Level
const (
	LEVEL_NATIVE      = Level(0) // native
	LEVEL_TRANSLATED  = Level(1) // translated
	LEVEL_EMULATED    = Level(2) // emulated
	LEVEL_UNSUPPORTED = Level(3) // unsupported
)

// Levels lists every level in order.
var Levels = []Level{LEVEL_NATIVE, LEVEL_TRANSLATED, LEVEL_EMULATED, LEVEL_UNSUPPORTED}

// ParseLevel converts a level name back to a Level.
func ParseLevel(name string) (level Level, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, level = range Levels {
		if level.String() == name {
			return
		}
	}

	level = LEVEL_UNSUPPORTED
	err = ErrLevelUnknown
	return
}

// Class is the kind of work an instruction performs.
type Class int

//go:generate go tool stringer -linecomment -type=Class
const (
	CLASS_ARITHMETIC = Class(0) // arithmetic
	CLASS_MOVE       = Class(1) // move
	CLASS_CONTROL    = Class(2) // control
)

// Classes lists every class in order.
var Classes = []Class{CLASS_ARITHMETIC, CLASS_MOVE, CLASS_CONTROL}

// ParseClass converts a class name back to a Class.
func ParseClass(name string) (class Class, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, class = range Classes {
		if class.String() == name {
			return
		}
	}

	class = CLASS_ARITHMETIC
	err = ErrClassUnknown
	return
}

// Baseline is the fastest native execution time, per class.
type Baseline map[Class]uint64

// Ideal returns the all-native time for one instruction of the class.
// Classes without a native template fall back to the fastest overall.
func (b Baseline) Ideal(class Class) (ps uint64) {
	ps, ok := b[class]
	if ok {
		return
	}

	for _, value := range b {
		if ps == 0 || value < ps {
			ps = value
		}
	}

	return
}
