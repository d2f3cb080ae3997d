package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[uint32]{}
	assert.True(s.Empty())

	s.Push(0x12345678)
	assert.False(s.Empty())
	assert.Equal(1, s.Len())
	assert.Equal(uint32(0x12345678), s.Data[0])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[string]{}
	s.Push("north")
	s.Push("east")

	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal("east", val)
	assert.Equal(1, s.Len())

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal("north", val)
	assert.True(s.Empty())

	val, ok = s.Pop()
	assert.False(ok)
	assert.Equal("", val)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[int]{}
	_, ok := s.Peek()
	assert.False(ok)

	s.Push(1)
	s.Push(2)

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(2, val)
	assert.Equal(2, s.Len())
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[int]{}
	s.Reset()
	assert.True(s.Empty())

	s.Push(1)
	s.Push(2)
	s.Reset()
	assert.True(s.Empty())
}
