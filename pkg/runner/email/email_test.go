package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/clipboard"
	"tableflip.dev/plustag/pkg/store"
)

func TestSetAndShow(t *testing.T) {
	color.NoColor = true
	kv := store.NewMemory(nil)
	svc, err := app.New(kv, app.Options{Clipboard: &clipboard.Recorder{}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&Email{Service: svc, Set: "foo@bar", JSON: true, Out: &buf}).Do(context.Background()))
	assert.JSONEq(t, `{"email":"foo@bar","valid":false}`, buf.String())

	buf.Reset()
	require.NoError(t, (&Email{Service: svc, Out: &buf}).Do(context.Background()))
	assert.Contains(t, buf.String(), "copy is disabled")
}

func TestSetWriteFailureIsReturned(t *testing.T) {
	kv := store.NewMemory(nil)
	svc, err := app.New(kv, app.Options{Clipboard: &clipboard.Recorder{}})
	require.NoError(t, err)
	kv.FailWrites = errors.New("read-only")

	var buf bytes.Buffer
	err = (&Email{Service: svc, Set: "a@b.com", Out: &buf}).Do(context.Background())
	var we *store.WriteError
	require.ErrorAs(t, err, &we)
	assert.Contains(t, buf.String(), "a@b.com", "value is kept in memory")
}
