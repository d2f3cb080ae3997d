package io

import (
	"github.com/ezrec/intcode/cpu"
)

// Temporary implements a circular buffer for temporary word storage.
// It operates as a FIFO queue with separate read/write positions. A zero
// Capacity lets the buffer grow as needed.
type Temporary struct {
	Capacity int // Capacity in words, or 0 for unbounded.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []cpu.Word
}

var _ Channel = (*Temporary)(nil)

// Rewind resets the temporary storage to empty, resetting indices and
// reinitializing the data buffer.
func (temp *Temporary) Rewind() {
	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]cpu.Word, temp.Capacity)
}

// Receive removes the oldest word from the buffer.
// The buffer wraps around at the end of its storage.
func (temp *Temporary) Receive() (value cpu.Word, ok bool) {
	if temp.Size == 0 {
		return
	}

	value = temp.Data[temp.ReadIndex]
	temp.ReadIndex = (temp.ReadIndex + 1) % len(temp.Data)
	temp.Size--
	ok = true

	return
}

// grow doubles the storage of an unbounded buffer, oldest word first.
func (temp *Temporary) grow() {
	data := make([]cpu.Word, max(2*len(temp.Data), 16))
	for n := range temp.Size {
		data[n] = temp.Data[(temp.ReadIndex+n)%len(temp.Data)]
	}

	temp.Data = data
	temp.ReadIndex = 0
	temp.WriteIndex = temp.Size
}

// Send writes a word to the buffer at the current write position.
// Returns ErrChannelFull if a bounded buffer has reached capacity.
func (temp *Temporary) Send(value cpu.Word) (err error) {
	if temp.Capacity > 0 {
		if temp.Size >= temp.Capacity {
			err = ErrChannelFull
			return
		}
		if len(temp.Data) != temp.Capacity {
			temp.Rewind()
		}
	} else if temp.Size == len(temp.Data) {
		temp.grow()
	}

	temp.Data[temp.WriteIndex] = value
	temp.WriteIndex = (temp.WriteIndex + 1) % len(temp.Data)
	temp.Size++

	return
}

// Drain removes and returns every buffered word, oldest first.
func (temp *Temporary) Drain() (values []cpu.Word) {
	for {
		value, ok := temp.Receive()
		if !ok {
			return
		}
		values = append(values, value)
	}
}
