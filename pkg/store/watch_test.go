package store

import (
	"context"
	"testing"
	"time"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) LogMode() string { return "dev" }

func (t testConfig) LogFile() string { return "" }

func (t testConfig) CopiedTimeout() time.Duration { return DefaultCopiedTimeout }

func TestPersistenceWatchEmitsKeyChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before storing.
	time.Sleep(50 * time.Millisecond)

	if err := WriteJSON(p, KeyAliases, []string{"promo"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventKeyChanged {
				if evt.Key != KeyAliases {
					t.Fatalf("expected key %q, got %q", KeyAliases, evt.Key)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}
