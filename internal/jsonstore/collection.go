// Package jsonstore persists a JSON array of records in a single file.
// It backs the development/file storage mode; all access to one collection
// is serialized through a mutex so concurrent requests cannot clobber each
// other's read-modify-write cycles.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type Collection[T any] struct {
	mu   sync.Mutex
	path string
}

func NewCollection[T any](dir, name string) *Collection[T] {
	return &Collection[T]{path: filepath.Join(dir, name+".json")}
}

// ensure creates the data directory and an empty collection file on first use.
func (c *Collection[T]) ensure() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		if err := os.WriteFile(c.path, []byte("[]"), 0o644); err != nil {
			return fmt.Errorf("init collection file: %w", err)
		}
	}
	return nil
}

func (c *Collection[T]) load() ([]T, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	return records, nil
}

func (c *Collection[T]) save(records []T) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := os.WriteFile(c.path, raw, 0o644); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	return nil
}

// All returns a snapshot of every record in the collection.
func (c *Collection[T]) All() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Update applies fn to the loaded records and writes back whatever fn
// returns. fn runs under the collection lock; an error from fn aborts the
// write and the file is left untouched.
func (c *Collection[T]) Update(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, err := c.load()
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	return c.save(next)
}
