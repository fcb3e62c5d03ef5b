package history

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/plustag/pkg/store"
)

func fixedClock(ms ...int64) func() time.Time {
	i := 0
	return func() time.Time {
		t := time.UnixMilli(ms[i])
		if i < len(ms)-1 {
			i++
		}
		return t
	}
}

func TestAppendThenReload(t *testing.T) {
	kv := store.NewMemory(nil)
	l := NewLog(kv, nil)

	before := time.Now().UnixMilli()
	e, err := l.Append("x")
	require.NoError(t, err)

	entries := NewLog(kv, nil).Entries()
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "x", last.Value)
	assert.Equal(t, e.ID, last.ID)

	ms, err := strconv.ParseInt(last.ID, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ms, before)
}

func TestAppendSameMillisecondCollides(t *testing.T) {
	// Ids are millisecond timestamps, so two copies in one millisecond share
	// an id. Both entries are still kept.
	l := NewLog(store.NewMemory(nil), nil, WithClock(fixedClock(1700000000000)))

	a, err := l.Append("first")
	require.NoError(t, err)
	b, err := l.Append("second")
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Len(t, l.Entries(), 2)

	i, err := l.Index(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, i, "lookup by a colliding id returns the newest")

	first, err := l.At(0)
	require.NoError(t, err)
	assert.Equal(t, "first", first.Value)
}

func TestAppendDistinctMilliseconds(t *testing.T) {
	l := NewLog(store.NewMemory(nil), nil, WithClock(fixedClock(1, 2)))
	a, _ := l.Append("a")
	b, _ := l.Append("b")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, []Entry{{ID: "1", Value: "a"}, {ID: "2", Value: "b"}}, l.Entries())
}

func TestAppendKeepsEntriesFromOtherWriters(t *testing.T) {
	kv := store.NewMemory(nil)
	a := NewLog(kv, nil, WithClock(fixedClock(1)))
	b := NewLog(kv, nil, WithClock(fixedClock(2)))

	_, err := a.Append("from a")
	require.NoError(t, err)
	_, err = b.Append("from b")
	require.NoError(t, err)

	assert.Equal(t, []Entry{{ID: "1", Value: "from a"}, {ID: "2", Value: "from b"}}, NewLog(kv, nil).Entries())
}

func TestAbsentHistoryStartsEmpty(t *testing.T) {
	kv := store.NewMemory(nil)
	l := NewLog(kv, nil)
	assert.Empty(t, l.Entries())

	_, err := l.Append("first")
	require.NoError(t, err)
	assert.Len(t, NewLog(kv, nil).Entries(), 1)
}

func TestMalformedHistorySoftResets(t *testing.T) {
	kv := store.NewMemory(map[string]string{store.KeyCopyHistory: `"not a list"`})
	l := NewLog(kv, nil)
	assert.Empty(t, l.Entries())

	_, err := l.Append("v")
	require.NoError(t, err)
	assert.Len(t, NewLog(kv, nil).Entries(), 1)
}

func TestAppendWriteFailure(t *testing.T) {
	kv := store.NewMemory(nil)
	kv.FailWrites = errors.New("disk full")
	l := NewLog(kv, nil)

	_, err := l.Append("v")
	var we *store.WriteError
	assert.ErrorAs(t, err, &we)
}

func TestEntryTime(t *testing.T) {
	ts, ok := Entry{ID: "1700000000000"}.Time()
	require.True(t, ok)
	assert.Equal(t, int64(1700000000000), ts.UnixMilli())

	_, ok = Entry{ID: "static"}.Time()
	assert.False(t, ok)
}

func TestLookupMissing(t *testing.T) {
	l := NewLog(store.NewMemory(nil), nil)
	_, err := l.Index("nope")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = l.At(0)
	assert.ErrorIs(t, err, ErrEntryNotFound)
	_, err = l.At(-1)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestCopiedBefore(t *testing.T) {
	cutoff := time.UnixMilli(2000)
	assert.True(t, Entry{ID: "1000"}.CopiedBefore(cutoff))
	assert.False(t, Entry{ID: "2000"}.CopiedBefore(cutoff))
	assert.False(t, Entry{ID: "3000"}.CopiedBefore(cutoff))
	assert.False(t, Entry{ID: "legacy"}.CopiedBefore(cutoff), "non-timestamp ids are kept")
}
