package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsClockTime(t *testing.T) {
	assert.True(t, IsClockTime("09:00"))
	assert.True(t, IsClockTime("23:59"))
	assert.False(t, IsClockTime("24:00"))
	assert.False(t, IsClockTime("9am"))
	assert.False(t, IsClockTime(""))
}

func TestIsClockRange(t *testing.T) {
	assert.True(t, IsClockRange("09:00", "17:00"))
	assert.False(t, IsClockRange("17:00", "09:00"))
	assert.False(t, IsClockRange("09:00", "09:00"))
	assert.False(t, IsClockRange("bad", "17:00"))
}
