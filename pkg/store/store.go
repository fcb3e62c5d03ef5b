// Package store provides the durable key-value storage shared by the alias
// catalog, the composer and the copy history.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys owned by the domain components. Each key is written by exactly one
// component.
const (
	KeyEmail       = "email"
	KeyAliases     = "aliases"
	KeyCopyHistory = "copyHistory"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// KeyValueStore is the synchronous get/set contract every component depends on.
// Values are raw JSON documents; Set always replaces the whole value.
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Persistence is a KeyValueStore that can also enumerate its keys and report
// changes made by other writers.
type Persistence interface {
	KeyValueStore
	Keys(ctx context.Context) []string
	Watch(ctx context.Context) (<-chan Event, error)
}

// ReadError reports a stored value that could not be decoded.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("store: read %q: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed write, e.g. a full disk or a permission problem.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store: write %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadJSON decodes the value stored at key into v. It returns ErrNotFound when
// the key is absent and a *ReadError when the stored bytes are not valid JSON
// for v.
func ReadJSON(kv KeyValueStore, key string, v any) error {
	data, err := kv.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return &ReadError{Key: key, Err: err}
	}
	if len(data) == 0 {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ReadError{Key: key, Err: err}
	}
	return nil
}

// WriteJSON encodes v and replaces the value stored at key.
func WriteJSON(kv KeyValueStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	if err := kv.Set(key, data); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}
