package emulator

import (
	"errors"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrInputExhausted = errors.New(f("input exhausted"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip     cpu.Word
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("ip %v %v", err.Ip, err.Err)
	}
	return f("ip %v line %d %v", err.Ip, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
