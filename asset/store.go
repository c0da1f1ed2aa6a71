package asset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
)

var ErrUnsupportedExtension = errors.New("unsupported asset extension")

// Stats counts cache lookups.
type Stats struct {
	Hits   int64
	Misses int64
	Items  int
}

// Store caches loaded assets by their cleaned path.
type Store struct {
	loader *Loader
	mutex  sync.RWMutex
	items  map[string]*Asset
	hits   int64
	misses int64
}

func NewStore(loader *Loader) *Store {
	if loader == nil {
		loader = NewLoader(nil)
	}
	return &Store{loader: loader, items: make(map[string]*Asset)}
}

// Get returns the asset at path, loading it on first use. Failed loads are
// not cached.
func (s *Store) Get(ctx context.Context, path string) (*Asset, error) {
	key := filepath.Clean(path)
	if !s.loader.Supports(key) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, path)
	}

	s.mutex.RLock()
	asset, ok := s.items[key]
	s.mutex.RUnlock()
	if ok {
		atomic.AddInt64(&s.hits, 1)
		return asset, nil
	}
	atomic.AddInt64(&s.misses, 1)

	asset, err := s.loader.LoadFile(ctx, key)
	if err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	// Another caller may have loaded it in the meantime, keep the first.
	if existing, ok := s.items[key]; ok {
		return existing, nil
	}
	s.items[key] = asset
	return asset, nil
}

// Reload drops any cached copy of path and loads it again.
func (s *Store) Reload(ctx context.Context, path string) (*Asset, error) {
	s.Remove(path)
	return s.Get(ctx, path)
}

func (s *Store) Remove(path string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.items, filepath.Clean(path))
}

func (s *Store) Stats() Stats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return Stats{
		Hits:   atomic.LoadInt64(&s.hits),
		Misses: atomic.LoadInt64(&s.misses),
		Items:  len(s.items),
	}
}
