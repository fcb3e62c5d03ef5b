package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/plustag/pkg/tui/theme"
)

func TestViewShowsTitleAndKeys(t *testing.T) {
	m := New(theme.Default().Help, 60, 30)
	out := m.View()
	assert.Contains(t, out, "plustag keys")
	assert.Contains(t, out, "ctrl+y")
}

func TestSetSizeHasFloor(t *testing.T) {
	m := New(theme.Default().Help, 1, 1)
	assert.Equal(t, 32, m.width)
	assert.Equal(t, 8, m.height)
}
