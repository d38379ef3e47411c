package kv

import (
	"iter"

	"github.com/indigo-web/utils/strcomp"
)

type Pair struct {
	Key, Value string
}

// Storage is an associative structure for storing (string, string) pairs. It acts as a map but
// uses linear search instead, which proves to be more efficient on relatively low amount of
// entries, which often enough is the case. Keys are compared case-insensitively and the
// insertion order is preserved.
type Storage struct {
	pairs      []Pair
	uniqueBuff []string
}

func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// Add adds a new pair of key and value.
func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// Set replaces the first value of the key and drops the rest of them. If there's no such
// key, the pair is added.
func (s *Storage) Set(key, value string) *Storage {
	for i, pair := range s.pairs {
		if strcomp.EqualFold(pair.Key, key) {
			s.pairs[i] = Pair{Key: key, Value: value}
			s.deleteFrom(i+1, key)
			return s
		}
	}

	return s.Add(key, value)
}

// Delete removes all the pairs of the key.
func (s *Storage) Delete(key string) *Storage {
	s.deleteFrom(0, key)
	return s
}

func (s *Storage) deleteFrom(offset int, key string) {
	n := offset
	for _, pair := range s.pairs[offset:] {
		if !strcomp.EqualFold(pair.Key, key) {
			s.pairs[n] = pair
			n++
		}
	}

	clear(s.pairs[n:])
	s.pairs = s.pairs[:n]
}

// Value returns the first value, corresponding to the key. Otherwise, empty string is returned
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or custom value, defined
// via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found. If it wasn't, it'll
// be an empty string.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if strcomp.EqualFold(key, pair.Key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Values returns an iterator over all values of the key.
func (s *Storage) Values(key string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, pair := range s.pairs {
			if strcomp.EqualFold(pair.Key, key) && !yield(pair.Value) {
				return
			}
		}
	}
}

// Keys returns an iterator over unique keys, in order of their first appearance. The keys
// are collected before the first one is yielded, so the storage may be modified while
// iterating.
//
// WARNING: the iterator shares a buffer with other Keys calls, so don't nest them.
func (s *Storage) Keys() iter.Seq[string] {
	s.uniqueBuff = s.uniqueBuff[:0]

	for _, pair := range s.pairs {
		if !contains(s.uniqueBuff, pair.Key) {
			s.uniqueBuff = append(s.uniqueBuff, pair.Key)
		}
	}

	keys := s.uniqueBuff

	return func(yield func(string) bool) {
		for _, key := range keys {
			if !yield(key) {
				return
			}
		}
	}
}

// Pairs returns an iterator over the pairs in insertion order.
func (s *Storage) Pairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	_, found := s.Get(key)
	return found
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Clone creates a deep copy, which may be used later or stored somewhere safely. However,
// it comes at cost of an allocation.
func (s *Storage) Clone() *Storage {
	return &Storage{
		pairs: clone(s.pairs),
	}
}

// Expose exposes the underlying pairs slice.
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Clear all the entries. However, all the allocated space won't be freed.
func (s *Storage) Clear() *Storage {
	clear(s.pairs)
	s.pairs = s.pairs[:0]
	return s
}

func contains(collection []string, key string) bool {
	for _, element := range collection {
		if strcomp.EqualFold(element, key) {
			return true
		}
	}

	return false
}

func clone[T any](source []T) []T {
	if len(source) == 0 {
		return nil
	}

	newSlice := make([]T, len(source))
	copy(newSlice, source)

	return newSlice
}
