// Package transient implements short-lived indicators such as the "copied"
// label, which raise on an action and drop by themselves after a delay.
package transient

import (
	"sync"
	"time"
)

// Stopper cancels a scheduled callback.
type Stopper interface {
	Stop() bool
}

// Scheduler runs f once after d. time.AfterFunc satisfies it.
type Scheduler func(d time.Duration, f func()) Stopper

func afterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Flag is a single raised/lowered indicator carrying the value it was raised
// for. Raising it again before the delay elapses cancels the pending reset
// and schedules a fresh one, so an older reset can never lower a newer raise.
type Flag struct {
	mu       sync.Mutex
	delay    time.Duration
	schedule Scheduler

	raised  bool
	value   string
	gen     uint64
	pending Stopper
}

// Option configures a Flag.
type Option func(*Flag)

// WithScheduler replaces time.AfterFunc, mainly for tests.
func WithScheduler(s Scheduler) Option {
	return func(f *Flag) { f.schedule = s }
}

// New returns a lowered flag that resets delay after each Raise.
func New(delay time.Duration, opts ...Option) *Flag {
	f := &Flag{delay: delay, schedule: afterFunc}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Raise sets the flag for value, replacing any pending reset.
func (f *Flag) Raise(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pending != nil {
		f.pending.Stop()
	}
	f.gen++
	gen := f.gen
	f.raised = true
	f.value = value
	f.pending = f.schedule(f.delay, func() { f.expire(gen) })
}

func (f *Flag) expire(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// A stopped timer may already be running its callback.
	if gen != f.gen || !f.raised {
		return
	}
	f.raised = false
	f.value = ""
	f.pending = nil
}

// Lower drops the flag now and cancels the pending reset.
func (f *Flag) Lower() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
	f.gen++
	f.raised = false
	f.value = ""
}

// Active reports whether the flag is raised and the value it was raised for.
func (f *Flag) Active() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.raised
}

// Delay returns the reset delay.
func (f *Flag) Delay() time.Duration {
	return f.delay
}

// Set keeps one Flag per key, created on first use.
type Set struct {
	mu    sync.Mutex
	delay time.Duration
	opts  []Option
	flags map[string]*Flag
}

// NewSet returns an empty set whose flags reset after delay.
func NewSet(delay time.Duration, opts ...Option) *Set {
	return &Set{delay: delay, opts: opts, flags: make(map[string]*Flag)}
}

// Get returns the flag for key, creating it lowered if needed.
func (s *Set) Get(key string) *Flag {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flags[key]
	if !ok {
		f = New(s.delay, s.opts...)
		s.flags[key] = f
	}
	return f
}

// Active reports whether the flag for key is raised.
func (s *Set) Active(key string) (string, bool) {
	s.mu.Lock()
	f, ok := s.flags[key]
	s.mu.Unlock()
	if !ok {
		return "", false
	}
	return f.Active()
}

// Delay returns the reset delay shared by every flag in the set.
func (s *Set) Delay() time.Duration {
	return s.delay
}
