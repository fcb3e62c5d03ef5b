package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/plustag/pkg/clipboard"
)

// setup points the store at a temp dir and swaps in a recording clipboard.
func setup(t *testing.T) (string, *clipboard.Recorder) {
	t.Helper()
	color.NoColor = true

	dir := filepath.Join(t.TempDir(), "store")
	t.Setenv("PLUSTAG_PATH", dir)
	t.Setenv("PLUSTAG_LOG_MODE", "prod")
	t.Setenv("PLUSTAG_CONFIG_PATH", t.TempDir())

	clip := &clipboard.Recorder{}
	prev := newClipboard
	newClipboard = func() clipboard.Writer { return clip }
	t.Cleanup(func() { newClipboard = prev })
	return dir, clip
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEmailSetAndShow(t *testing.T) {
	dir, _ := setup(t)

	_, err := execute(t, "email", "set", "a@b.com")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "email.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `"a@b.com"`, string(raw))

	out, err := execute(t, "email", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.com","valid":true}`, out)
}

func TestAliasLifecycle(t *testing.T) {
	setup(t)

	out, err := execute(t, "alias", "add", "My", "Promo!", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"My Promo!","value":"MyPromo"}`, out)

	out, err = execute(t, "alias", "ls", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"label":"My Promo!","value":"MyPromo"}]`, out)

	out, err = execute(t, "alias", "rm", "MyPromo", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"MyPromo","removed":1}`, out)

	_, err = execute(t, "alias", "rm", "MyPromo")
	assert.Error(t, err)
}

func TestAliasAddRejectsEmpty(t *testing.T) {
	setup(t)
	_, err := execute(t, "alias", "add", "!!!")
	assert.Error(t, err)
}

func TestDeriveWithTag(t *testing.T) {
	setup(t)
	_, err := execute(t, "email", "set", "user@example.com")
	require.NoError(t, err)
	_, err = execute(t, "alias", "add", "promo")
	require.NoError(t, err)

	out, err := execute(t, "derive", "--tag", "promo", "--json")
	require.NoError(t, err)
	var got struct {
		Address string `json:"address"`
		Valid   bool   `json:"valid"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "user+promo@example.com", got.Address)
	assert.True(t, got.Valid)

	_, err = execute(t, "derive", "--tag", "unknown")
	assert.Error(t, err)
}

func TestCopyRecordsHistory(t *testing.T) {
	_, clip := setup(t)

	_, err := execute(t, "email", "set", "a@b.com")
	require.NoError(t, err)

	out, err := execute(t, "copy", "--new", "promo", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"copied":"a+promo@b.com"}`, out)
	assert.Equal(t, "a+promo@b.com", clip.Last())

	out, err = execute(t, "history", "--json")
	require.NoError(t, err)
	var entries []struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "a+promo@b.com", entries[0].Value)

	_, err = execute(t, "history", "copy", entries[0].ID)
	require.NoError(t, err)
	assert.Len(t, clip.Writes, 2)

	out, err = execute(t, "history", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 1, "re-copying does not record")
}

func TestCopyInvalidEmail(t *testing.T) {
	_, clip := setup(t)
	_, err := execute(t, "email", "set", "foo@bar")
	require.NoError(t, err)

	_, err = execute(t, "copy")
	assert.Error(t, err)
	assert.Empty(t, clip.Writes)
}

func TestJSONErrors(t *testing.T) {
	setup(t)
	out, err := execute(t, "history", "copy", "nope", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"error"`)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}
