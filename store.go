package wtinylfu

import (
	"runtime"
	"sync"
)

const maxShards = 256

// store is the sharded key -> *entry lookup table, generalized from the
// teacher's Map interface (store.go's LockedMap: an RWMutex guarding a
// map[string]interface{}) into multiple independently locked shards so
// writes to unrelated keys don't serialize through one mutex. The teacher's
// own cache.go kept a single shardedMap field for this purpose; this makes
// that sharding concrete.
type store[K comparable, V any] struct {
	shards []storeShard[K, V]
	mask   uint64
}

type storeShard[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]*entry[K, V]
}

func newStore[K comparable, V any]() *store[K, V] {
	n := next2Power(uint64(runtime.GOMAXPROCS(0)))
	if n > maxShards {
		n = maxShards
	}
	if n < 1 {
		n = 1
	}
	s := &store[K, V]{
		shards: make([]storeShard[K, V], n),
		mask:   n - 1,
	}
	for i := range s.shards {
		s.shards[i].data = make(map[K]*entry[K, V])
	}
	return s
}

func (s *store[K, V]) shardFor(primaryHash uint64) *storeShard[K, V] {
	return &s.shards[primaryHash&s.mask]
}

func (s *store[K, V]) get(primaryHash uint64, key K) (*entry[K, V], bool) {
	shard := s.shardFor(primaryHash)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	e, ok := shard.data[key]
	return e, ok
}

func (s *store[K, V]) set(primaryHash uint64, key K, e *entry[K, V]) {
	shard := s.shardFor(primaryHash)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.data[key] = e
}

func (s *store[K, V]) del(primaryHash uint64, key K) {
	shard := s.shardFor(primaryHash)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	delete(shard.data, key)
}

func (s *store[K, V]) len() int {
	n := 0
	for i := range s.shards {
		s.shards[i].mu.RLock()
		n += len(s.shards[i].data)
		s.shards[i].mu.RUnlock()
	}
	return n
}

func (s *store[K, V]) clear() {
	for i := range s.shards {
		s.shards[i].mu.Lock()
		s.shards[i].data = make(map[K]*entry[K, V])
		s.shards[i].mu.Unlock()
	}
}
