package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	cases := map[string]time.Duration{
		"":          0,
		"90m":       90 * time.Minute,
		"1d":        24 * time.Hour,
		"1w2d6h30m": (7*24+2*24+6)*time.Hour + 30*time.Minute,
		" 2 hours ": 2 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseWindow(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "5y", "0d", "d1"} {
		_, err := ParseWindow(in)
		assert.Error(t, err, in)
	}
}

func TestFormatWindow(t *testing.T) {
	assert.Equal(t, "1w2d6h30m", FormatWindow((7*24+2*24+6)*time.Hour+30*time.Minute))
	assert.Equal(t, "1m30s", FormatWindow(90*time.Second))
	assert.Equal(t, "0s", FormatWindow(0))
}
