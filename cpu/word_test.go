package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWord(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0", W(0).String())
	assert.Equal("-1", W(-1).String())
	assert.Equal("1125899906842624", W(1125899906842624).String())
	assert.True(W(-5).Negative())
	assert.False(W(0).Negative())
	assert.True(W(0).IsZero())

	assert.Equal(W(7), W(3).Add(W(4)))
	assert.Equal(W(-1), W(3).Add(W(-4)))
	assert.Equal(W(-12), W(3).Mul(W(-4)))
	assert.Equal(W(1219070632396864), W(34915192).Mul(W(34915192)))

	assert.True(W(-3).Less(W(2)))
	assert.False(W(2).Less(W(-3)))
	assert.False(W(2).Less(W(2)))

	value, ok := W(-42).Int64()
	assert.True(ok)
	assert.Equal(int64(-42), value)

	big := W(1 << 62).Mul(W(16))
	_, ok = big.Int64()
	assert.False(ok)
	assert.Equal("73786976294838206464", big.String())
}

func TestParseWord(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		value string
	}){
		{"0", "0"},
		{"42", "42"},
		{" -17 ", "-17"},
		{"+9", "9"},
		{"1219070632396864", "1219070632396864"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
		{"-57896044618658097711785492504343953926634992332820282019728792003956564819968",
			"-57896044618658097711785492504343953926634992332820282019728792003956564819968"},
	}

	for _, entry := range table {
		word, err := ParseWord(entry.text)
		if assert.NoError(err, entry.text) {
			assert.Equal(entry.value, word.String(), entry.text)
		}
	}

	for _, text := range []string{"", "-", "12a", "0x10", "1.5",
		"57896044618658097711785492504343953926634992332820282019728792003956564819968",
	} {
		_, err := ParseWord(text)
		assert.ErrorAs(err, new(ErrParseNumber), text)
	}
}
