package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull     = errors.New(f("channel full"))
	ErrChannelReadOnly = errors.New(f("channel read-only"))
)

// ErrTapeWord is returned for tape input that is not a word.
type ErrTapeWord string

func (err ErrTapeWord) Error() string {
	return f("tape: '%v' is not a word", string(err))
}
