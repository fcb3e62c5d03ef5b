package options

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/plustag/pkg/store"
)

func TestHandleErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	o := &OutputOptions{JSON: true, Out: &buf}

	require.NoError(t, o.HandleError(errors.New("boom")))
	assert.JSONEq(t, `{"error":"boom"}`, buf.String())

	buf.Reset()
	require.NoError(t, o.HandleError(&store.WriteError{Key: "email", Err: errors.New("disk full")}))
	assert.JSONEq(t, `{"warning":"Not saved: disk full"}`, buf.String())
}

func TestHandleErrorPlain(t *testing.T) {
	o := &OutputOptions{}
	assert.NoError(t, o.HandleError(nil))
	assert.EqualError(t, o.HandleError(errors.New("boom")), "boom")
	assert.NoError(t, o.HandleError(&store.WriteError{Err: errors.New("x")}), "warnings do not fail")
}

func TestWrap(t *testing.T) {
	out := Wrap("  one two three four  ", 9)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 9, line)
	}
	assert.Equal(t, "   ", Wrap("   ", 10))
}
