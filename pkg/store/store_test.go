package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func TestDiskvRoundTripAcrossInstances(t *testing.T) {
	base := t.TempDir()
	first, err := Load(testConfig{path: base})
	require.NoError(t, err)

	in := []pair{{"b", "b"}, {"a", "a"}, {"c c", "cc"}}
	require.NoError(t, WriteJSON(first, KeyAliases, in))

	second, err := Load(testConfig{path: base})
	require.NoError(t, err)

	var out []pair
	require.NoError(t, ReadJSON(second, KeyAliases, &out))
	assert.Equal(t, in, out)

	_, err = os.Stat(filepath.Join(base, KeyAliases+fileExt))
	assert.NoError(t, err, "each key is one json file")
}

func TestDiskvSeesWritesFromAnotherInstance(t *testing.T) {
	base := t.TempDir()
	a, err := Load(testConfig{path: base})
	require.NoError(t, err)
	b, err := Load(testConfig{path: base})
	require.NoError(t, err)

	require.NoError(t, WriteJSON(a, KeyEmail, "one@example.com"))
	var got string
	require.NoError(t, ReadJSON(b, KeyEmail, &got))
	require.Equal(t, "one@example.com", got)

	require.NoError(t, WriteJSON(b, KeyEmail, "two@example.com"))
	require.NoError(t, ReadJSON(a, KeyEmail, &got))
	assert.Equal(t, "two@example.com", got)
}

func TestReadJSONMissingKey(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)

	var v string
	err = ReadJSON(p, KeyEmail, &v)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadJSONMalformed(t *testing.T) {
	m := NewMemory(map[string]string{KeyAliases: "{not json"})

	var v []pair
	err := ReadJSON(m, KeyAliases, &v)
	var re *ReadError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KeyAliases, re.Key)
}

func TestWriteJSONFailure(t *testing.T) {
	m := NewMemory(nil)
	boom := errors.New("quota exceeded")
	m.FailWrites = boom

	err := WriteJSON(m, KeyEmail, "x@y.z")
	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.ErrorIs(t, err, boom)
}

func TestKeys(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, p.Keys(context.Background()))

	require.NoError(t, WriteJSON(p, KeyEmail, "a@b.com"))
	require.NoError(t, WriteJSON(p, KeyCopyHistory, []pair{}))
	assert.Equal(t, []string{KeyCopyHistory, KeyEmail}, p.Keys(context.Background()))
}

func TestMemoryWatch(t *testing.T) {
	m := NewMemory(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := m.Watch(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Set(KeyEmail, []byte(`"a@b.com"`)))

	evt := <-ch
	assert.Equal(t, Event{Type: EventKeyChanged, Key: KeyEmail}, evt)
}
