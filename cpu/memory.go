package cpu

import (
	"maps"
)

// Memory is a sparse, auto-extending store of Words.
//
// Reading an address never written returns zero and materializes the cell,
// so the set of present addresses only grows. Negative addresses fault.
type Memory struct {
	cells map[Word]Word
}

// NewMemory creates a memory initialized from a flat image.
func NewMemory(image []Word) (mem *Memory) {
	mem = &Memory{
		cells: make(map[Word]Word, len(image)),
	}

	for n, value := range image {
		mem.cells[W(int64(n))] = value
	}

	return
}

// Read returns the value at address, materializing it at zero if absent.
func (mem *Memory) Read(address Word) (value Word, err error) {
	if address.Negative() {
		err = ErrAddressing{Address: address}
		return
	}

	value, ok := mem.cells[address]
	if !ok {
		mem.cells[address] = value
	}

	return
}

// Write stores value at address.
func (mem *Memory) Write(address Word, value Word) (err error) {
	if address.Negative() {
		err = ErrAddressing{Address: address}
		return
	}

	mem.cells[address] = value

	return
}

// Peek inspects an address without materializing it.
func (mem *Memory) Peek(address Word) (value Word, present bool) {
	value, present = mem.cells[address]
	return
}

// Len returns the number of materialized cells.
func (mem *Memory) Len() int {
	return len(mem.cells)
}

// Clone returns a deep copy of the memory.
func (mem *Memory) Clone() *Memory {
	return &Memory{cells: maps.Clone(mem.cells)}
}
