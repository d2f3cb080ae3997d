// Package io provides I/O channel implementations for the intcode emulator.
// It includes channel types for word-level I/O: fixed input (Rom), a bounded
// FIFO used to link machines and collect output (Temporary), and a text
// stream (Tape).
package io

import (
	"github.com/ezrec/intcode/cpu"
)

// Channel defines the interface for all I/O channels attached to a machine.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns the next word from the channel, if one is available.
	Receive() (value cpu.Word, ok bool)
	// Send writes a single word to the channel.
	Send(value cpu.Word) error
}
