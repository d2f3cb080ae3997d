package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLocales()
	assert.Equal("ip 12 bad", From("ip %d %v", 12, "bad"))

	SetLocales("en-GB", "en-US")
	assert.Equal("value -7", From("value %v", -7))
}
