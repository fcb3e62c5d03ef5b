package transient

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTask struct {
	fn      func()
	stopped bool
}

func (m *manualTask) Stop() bool {
	was := !m.stopped
	m.stopped = true
	return was
}

// manualScheduler records scheduled resets and fires them on demand.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

func (s *manualScheduler) schedule(_ time.Duration, fn func()) Stopper {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// fire runs task i regardless of whether it was stopped, the way a timer
// that already started its callback would.
func (s *manualScheduler) fire(i int) {
	s.mu.Lock()
	t := s.tasks[i]
	s.mu.Unlock()
	t.fn()
}

func TestRaiseThenReset(t *testing.T) {
	sched := &manualScheduler{}
	f := New(time.Second, WithScheduler(sched.schedule))

	_, ok := f.Active()
	require.False(t, ok)

	f.Raise("a+promo@b.com")
	v, ok := f.Active()
	require.True(t, ok)
	assert.Equal(t, "a+promo@b.com", v)

	sched.fire(0)
	_, ok = f.Active()
	assert.False(t, ok)
}

func TestRaiseCancelsPendingReset(t *testing.T) {
	sched := &manualScheduler{}
	f := New(time.Second, WithScheduler(sched.schedule))

	f.Raise("first")
	f.Raise("second")
	require.Len(t, sched.tasks, 2)
	assert.True(t, sched.tasks[0].stopped, "first reset is cancelled")

	// The first reset fires late anyway; the newer raise must survive it.
	sched.fire(0)
	v, ok := f.Active()
	require.True(t, ok)
	assert.Equal(t, "second", v)

	sched.fire(1)
	_, ok = f.Active()
	assert.False(t, ok)
}

func TestLowerCancels(t *testing.T) {
	sched := &manualScheduler{}
	f := New(time.Second, WithScheduler(sched.schedule))

	f.Raise("x")
	f.Lower()
	assert.True(t, sched.tasks[0].stopped)
	_, ok := f.Active()
	assert.False(t, ok)

	// The lowered reset fires late; a newer raise must survive it.
	f.Raise("y")
	sched.fire(0)
	v, ok := f.Active()
	require.True(t, ok)
	assert.Equal(t, "y", v)
}

func TestRealTimerResets(t *testing.T) {
	f := New(20 * time.Millisecond)
	f.Raise("x")
	require.Eventually(t, func() bool {
		_, ok := f.Active()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestSetKeepsFlagsIndependent(t *testing.T) {
	sched := &manualScheduler{}
	s := NewSet(time.Second, WithScheduler(sched.schedule))

	s.Get("1").Raise("one")
	s.Get("2").Raise("two")

	v, ok := s.Active("1")
	require.True(t, ok)
	assert.Equal(t, "one", v)

	sched.fire(0)
	_, ok = s.Active("1")
	assert.False(t, ok)
	_, ok = s.Active("2")
	assert.True(t, ok)

	_, ok = s.Active("missing")
	assert.False(t, ok)
	assert.Same(t, s.Get("2"), s.Get("2"))
}
