package driver

import (
	"errors"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNoSolution     = errors.New(f("no solution"))
	ErrUnexpectedHalt = errors.New(f("unexpected halt"))
	ErrStalled        = errors.New(f("machine stalled awaiting input"))
	ErrStepLimit      = errors.New(f("step limit reached"))
)

// ErrBadOutput is raised when a program emits a value its driver cannot interpret.
type ErrBadOutput struct {
	What  string
	Value cpu.Word
}

func (err ErrBadOutput) Error() string {
	return f("bad %v output %v", err.What, err.Value)
}
