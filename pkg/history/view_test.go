package history

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/plustag/pkg/clipboard"
	"tableflip.dev/plustag/pkg/store"
	"tableflip.dev/plustag/pkg/transient"
)

type stopFunc func() bool

func (f stopFunc) Stop() bool { return f() }

// heldScheduler never fires, keeping every raised flag up.
func heldScheduler(time.Duration, func()) transient.Stopper {
	return stopFunc(func() bool { return true })
}

func seededView(t *testing.T, clip clipboard.Writer) (*View, []Entry) {
	t.Helper()
	kv := store.NewMemory(nil)
	l := NewLog(kv, nil, WithClock(fixedClock(10, 20, 30)))
	for _, v := range []string{"a+1@b.com", "a+2@b.com", "a+3@b.com"} {
		_, err := l.Append(v)
		require.NoError(t, err)
	}
	v := NewView(l, clip, time.Second, transient.WithScheduler(heldScheduler))
	return v, v.Entries()
}

func TestEntriesStartCollapsed(t *testing.T) {
	v, entries := seededView(t, &clipboard.Recorder{})
	for i := range entries {
		assert.Equal(t, Collapsed, v.State(i))
	}
	assert.Equal(t, -1, v.Expanded())
}

func TestSelectExpandsOnlyOne(t *testing.T) {
	v, entries := seededView(t, &clipboard.Recorder{})

	require.NoError(t, v.Select(0))
	assert.Equal(t, Expanded, v.State(0))

	require.NoError(t, v.Select(2))
	assert.Equal(t, Collapsed, v.State(0))
	assert.Equal(t, Expanded, v.State(2))

	expanded := 0
	for i := range entries {
		if v.State(i) == Expanded {
			expanded++
		}
	}
	assert.Equal(t, 1, expanded)

	v.Collapse()
	assert.Equal(t, Collapsed, v.State(2))
}

func TestSelectUnknown(t *testing.T) {
	v, _ := seededView(t, &clipboard.Recorder{})
	assert.ErrorIs(t, v.Select(3), ErrEntryNotFound)
	assert.ErrorIs(t, v.Select(-1), ErrEntryNotFound)

	_, err := v.Index("404")
	assert.ErrorIs(t, err, ErrEntryNotFound)
	i, err := v.Index("20")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
}

func TestCopyWritesExactValueAndLabels(t *testing.T) {
	rec := &clipboard.Recorder{}
	v, entries := seededView(t, rec)

	assert.Equal(t, entries[1].Value, v.Label(1))

	e, err := v.Copy(1)
	require.NoError(t, err)
	assert.Equal(t, entries[1], e)
	assert.Equal(t, "a+2@b.com", rec.Last())
	assert.True(t, v.Copied(1))
	assert.Equal(t, "Copied a+2@b.com", v.Label(1))

	assert.False(t, v.Copied(0))
	assert.Equal(t, entries[0].Value, v.Label(0))

	assert.Len(t, v.Entries(), 3, "re-copying adds no entry")
	assert.Equal(t, Collapsed, v.State(1), "copy is independent of expansion")
}

func TestCollidingIdsStayDistinct(t *testing.T) {
	rec := &clipboard.Recorder{}
	l := NewLog(store.NewMemory(nil), nil, WithClock(fixedClock(1700000000000)))
	for _, value := range []string{"a+one@b.com", "a+two@b.com"} {
		_, err := l.Append(value)
		require.NoError(t, err)
	}
	v := NewView(l, rec, time.Second, transient.WithScheduler(heldScheduler))
	entries := v.Entries()
	require.Equal(t, entries[0].ID, entries[1].ID)

	require.NoError(t, v.Select(1))
	assert.Equal(t, Collapsed, v.State(0))
	assert.Equal(t, Expanded, v.State(1))

	e, err := v.Copy(0)
	require.NoError(t, err)
	assert.Equal(t, "a+one@b.com", e.Value)
	assert.Equal(t, "a+one@b.com", rec.Last())
	assert.Equal(t, "Copied a+one@b.com", v.Label(0))
	assert.False(t, v.Copied(1))
	assert.Equal(t, "a+two@b.com", v.Label(1))
}

func TestCopyFailureDoesNotLabel(t *testing.T) {
	rec := &clipboard.Recorder{Err: errors.New("denied")}
	v, _ := seededView(t, rec)

	_, err := v.Copy(0)
	var we *clipboard.WriteError
	require.ErrorAs(t, err, &we)
	assert.False(t, v.Copied(0))
}

func TestCopiedLabelResets(t *testing.T) {
	kv := store.NewMemory(nil)
	l := NewLog(kv, nil)
	_, err := l.Append("v")
	require.NoError(t, err)
	v := NewView(l, &clipboard.Recorder{}, 20*time.Millisecond)

	_, err = v.Copy(0)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return !v.Copied(0) }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "v", v.Label(0))
}

func TestRefreshDropsVanishedExpansion(t *testing.T) {
	kv := store.NewMemory(nil)
	l := NewLog(kv, nil, WithClock(fixedClock(5)))
	_, err := l.Append("v")
	require.NoError(t, err)
	v := NewView(l, &clipboard.Recorder{}, time.Second)
	require.NoError(t, v.Select(0))

	require.NoError(t, kv.Set(store.KeyCopyHistory, []byte(`[]`)))
	assert.Empty(t, v.Refresh())
	assert.Equal(t, -1, v.Expanded())
}
