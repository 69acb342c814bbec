// Package cache is the keyed read cache between the API handlers and the
// document backend. Concurrent reads of one key collapse to a single
// backend fetch, and every mutation kind declares the keys it invalidates
// in a static table so a screen can never forget its refetch.
package cache

import (
	"context"
	"strings"
	"sync"

	"github.com/ninja-software/terror/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

type Key string

const (
	KeyProducts          Key = "products"
	KeyProductCategories Key = "productCategories"
	KeyBillboards        Key = "billboards"
	KeyPages             Key = "pages"

	// KeyPageItems is a prefix key: invalidating it drops every cached
	// single page item.
	KeyPageItems Key = "pageItem:"
)

// PageItemKey is the cache key for one page's detail read.
func PageItemKey(pageID string) Key {
	return KeyPageItems + Key(pageID)
}

func (k Key) isPrefix() bool {
	return strings.HasSuffix(string(k), ":")
}

type Store struct {
	mu      sync.RWMutex
	entries map[Key]interface{}
	group   singleflight.Group
	log     *zerolog.Logger
}

func New(log *zerolog.Logger) *Store {
	return &Store{
		entries: map[Key]interface{}{},
		log:     log,
	}
}

// Get returns the cached value for key, or runs fetch and caches its
// result. Concurrent callers for the same key during an in-flight fetch
// share the one call; at most one fetch per key is ever outstanding.
func (s *Store) Get(ctx context.Context, key Key, fetch func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err, _ := s.group.Do(string(key), func() (interface{}, error) {
		// A sibling flight may have populated the entry already.
		s.mu.RLock()
		v, ok := s.entries[key]
		s.mu.RUnlock()
		if ok {
			return v, nil
		}
		fetched, err := fetch(ctx)
		if err != nil {
			return nil, terror.Error(err)
		}
		s.mu.Lock()
		s.entries[key] = fetched
		s.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, terror.Error(err)
	}
	return v, nil
}

// Invalidate drops the given keys so their next read refetches. Prefix keys
// (trailing ":") drop every entry under the prefix.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		if key.isPrefix() {
			for k := range s.entries {
				if strings.HasPrefix(string(k), string(key)) {
					delete(s.entries, k)
				}
			}
			continue
		}
		delete(s.entries, key)
	}
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
