package info

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/plustag/pkg/store"
)

type config struct{}

func (config) BasePath() string             { return "/tmp/plustag-test" }
func (config) LogMode() string              { return "prod" }
func (config) LogFile() string              { return "" }
func (config) CopiedTimeout() time.Duration { return 2 * time.Second }

func TestInfoListsKeys(t *testing.T) {
	var buf bytes.Buffer
	n := Info{
		Config:      config{},
		Persistence: store.NewMemory(map[string]string{store.KeyEmail: `"a@b.com"`}),
		Out:         &buf,
	}
	require.NoError(t, n.Do(context.Background()))
	out := buf.String()
	assert.Contains(t, out, "/tmp/plustag-test")
	assert.Contains(t, out, "2s")
	assert.Contains(t, out, "  email\n")
}

func TestInfoEmptyStore(t *testing.T) {
	var buf bytes.Buffer
	n := Info{Config: config{}, Persistence: store.NewMemory(nil), Out: &buf}
	require.NoError(t, n.Do(context.Background()))
	assert.Contains(t, buf.String(), "nothing stored yet")
}

func TestInfoNeedsPersistence(t *testing.T) {
	n := Info{Config: config{}, Out: &bytes.Buffer{}}
	assert.Error(t, n.Do(context.Background()))
}
