package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process Persistence. It is used by tests and whenever a
// throwaway store is enough.
type Memory struct {
	mu       sync.Mutex
	values   map[string][]byte
	watchers []chan Event

	// FailWrites makes every Set fail with the given error when non-nil.
	FailWrites error
}

// NewMemory returns an empty in-memory store, optionally seeded with raw
// values keyed by name.
func NewMemory(seed map[string]string) *Memory {
	m := &Memory{values: make(map[string][]byte, len(seed))}
	for k, v := range seed {
		m.values[k] = []byte(v)
	}
	return m
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	for _, w := range m.watchers {
		select {
		case w <- Event{Type: EventKeyChanged, Key: key}:
		default:
		}
	}
	return nil
}

func (m *Memory) Keys(_ context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Watch reports every Set until ctx is cancelled.
func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 16)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}
