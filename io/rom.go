package io

import (
	"github.com/ezrec/intcode/cpu"
)

// Rom is a read-only list of input words.
type Rom struct {
	Data []cpu.Word

	index int
}

var _ Channel = (*Rom)(nil)

// Rewind restarts reading from the first word.
func (rc *Rom) Rewind() {
	rc.index = 0
}

func (rc *Rom) Receive() (value cpu.Word, ok bool) {
	if rc.index >= len(rc.Data) {
		return
	}

	value = rc.Data[rc.index]
	rc.index++
	ok = true

	return
}

func (rc *Rom) Send(value cpu.Word) error {
	return ErrChannelReadOnly
}
