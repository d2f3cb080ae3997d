package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(Words(1, 2, 3))
	assert.Equal(3, mem.Len())

	value, err := mem.Read(W(1))
	assert.NoError(err)
	assert.Equal(W(2), value)

	_, present := mem.Peek(W(1000))
	assert.False(present)
	assert.Equal(3, mem.Len())

	value, err = mem.Read(W(1000))
	assert.NoError(err)
	assert.Equal(W(0), value)
	assert.Equal(4, mem.Len())
	_, present = mem.Peek(W(1000))
	assert.True(present)

	huge, err := ParseWord("1000000000000000000000000")
	assert.NoError(err)
	assert.NoError(mem.Write(huge, W(9)))
	value, err = mem.Read(huge)
	assert.NoError(err)
	assert.Equal(W(9), value)

	_, err = mem.Read(W(-1))
	assert.Equal(ErrAddressing{Address: W(-1)}, err)
	err = mem.Write(W(-2), W(0))
	assert.Equal(ErrAddressing{Address: W(-2)}, err)
	assert.Equal(5, mem.Len())
}

func TestMemory_Clone(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(Words(1, 2, 3))
	clone := mem.Clone()

	assert.NoError(clone.Write(W(0), W(42)))
	value, _ := mem.Peek(W(0))
	assert.Equal(W(1), value)
	value, _ = clone.Peek(W(0))
	assert.Equal(W(42), value)
}
