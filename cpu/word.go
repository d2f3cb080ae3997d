package cpu

import (
	"strings"

	"github.com/holiman/uint256"
)

// Word is a signed 256-bit two's-complement machine word.
//
// Add and Mul wrap modulo 2^256. Comparison is signed. Words are plain
// values, so they compare with == and may be used as map keys.
type Word struct {
	u uint256.Int
}

var (
	hundred = uint256.NewInt(100)
	ten     = uint256.NewInt(10)
)

// W returns the Word for a 64-bit signed value.
func W(value int64) Word {
	ext := uint64(value >> 63)
	return Word{u: uint256.Int{uint64(value), ext, ext, ext}}
}

// Words converts a list of 64-bit values to Words.
func Words(values ...int64) (words []Word) {
	words = make([]Word, len(values))
	for n, value := range values {
		words[n] = W(value)
	}
	return
}

// ParseWord parses an optionally signed decimal integer.
func ParseWord(text string) (word Word, err error) {
	digits := strings.TrimSpace(text)
	negative := false
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		negative = digits[0] == '-'
		digits = digits[1:]
	}

	if len(digits) == 0 {
		err = ErrParseNumber(text)
		return
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			err = ErrParseNumber(text)
			return
		}
	}

	var mag uint256.Int
	if mag.SetFromDecimal(digits) != nil {
		err = ErrParseNumber(text)
		return
	}

	if negative {
		word.u.Neg(&mag)
		// Only -2^255 has a magnitude with the sign bit set.
		if word.u.Sign() > 0 {
			err = ErrParseNumber(text)
		}
		return
	}

	if mag.Sign() < 0 {
		err = ErrParseNumber(text)
		return
	}
	word.u = mag
	return
}

// Add returns w + v.
func (w Word) Add(v Word) (sum Word) {
	sum.u.Add(&w.u, &v.u)
	return
}

// Mul returns w * v.
func (w Word) Mul(v Word) (product Word) {
	product.u.Mul(&w.u, &v.u)
	return
}

// Less reports whether w < v.
func (w Word) Less(v Word) bool {
	return w.u.Slt(&v.u)
}

// IsZero reports whether w is zero.
func (w Word) IsZero() bool {
	return w.u.IsZero()
}

// Negative reports whether w is below zero.
func (w Word) Negative() bool {
	return w.u.Sign() < 0
}

// Int64 returns w as an int64, and whether it fits.
func (w Word) Int64() (value int64, ok bool) {
	value = int64(w.u[0])
	ext := uint64(value >> 63)
	ok = w.u[1] == ext && w.u[2] == ext && w.u[3] == ext
	return
}

// divmod100 splits a non-negative word into w / 100 and w % 100.
func (w Word) divmod100() (quo Word, rem uint64) {
	var r uint256.Int
	quo.u.DivMod(&w.u, hundred, &r)
	rem = r.Uint64()
	return
}

// divmod10 splits a non-negative word into w / 10 and w % 10.
func (w Word) divmod10() (quo Word, rem uint64) {
	var r uint256.Int
	quo.u.DivMod(&w.u, ten, &r)
	rem = r.Uint64()
	return
}

// String returns the signed decimal form of w.
func (w Word) String() string {
	if w.Negative() {
		var mag uint256.Int
		mag.Neg(&w.u)
		return "-" + mag.Dec()
	}
	return w.u.Dec()
}
