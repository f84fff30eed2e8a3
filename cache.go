// Package wtinylfu is a thread-safe, fixed-size, in-memory cache implementing
// the Window TinyLFU admission/eviction policy, augmented with an optional
// learned admission layer. You can use the same Cache instance from as many
// goroutines as you want, the same guarantee the teacher (Ristretto) makes,
// though the concurrency discipline that delivers it here is a single
// eviction mutex guarding segment structure rather than Ristretto's
// buffered-channel policy processor.
package wtinylfu

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dhrubacb/wtinylfu/config"
	"github.com/dhrubacb/wtinylfu/predictor"
)

// Cache is a size-bounded key-value store. K must be comparable so it can
// key both the lookup table and the segment lists' identity; V is
// unconstrained.
type Cache[K comparable, V any] struct {
	cfg *config.Config

	store *store[K, V]

	// evictLock (L_evict) serializes every segment-list read or mutation:
	// promotion, demotion, eviction, and the predictor's train/predict
	// calls. It is a plain sync.Mutex rather than a reentrant lock — every
	// internal helper below assumes the caller already holds it and never
	// re-acquires, which gives the same "single reentrant eviction mutex"
	// contract without needing actual reentrancy support Go doesn't offer.
	evictLock sync.Mutex

	window       *segment[K, V]
	probationary *segment[K, V]
	protected    *segment[K, V]

	probationarySize int
	protectedSize    int

	sketch    *cmSketch
	predictor *predictor.Predictor
	admission *admissionPolicy[K, V]

	stats stats
	size  int64 // resident entry count, mutated only under evictLock
}

// New builds a Cache from a validated Config.
func New[K comparable, V any](cfg *config.Config) (*Cache[K, V], error) {
	if cfg == nil {
		return nil, fmt.Errorf("wtinylfu: nil config")
	}

	pred := predictor.New(cfg.MaxTrainingExamples, cfg.LearningRate)
	sketch := newCmSketch(4 * uint64(cfg.MaximumSize))

	c := &Cache[K, V]{
		cfg:              cfg,
		store:            newStore[K, V](),
		window:           newSegment[K, V](tagWindow),
		probationary:     newSegment[K, V](tagProbationary),
		protected:        newSegment[K, V](tagProtected),
		probationarySize: cfg.ProbationarySize(),
		protectedSize:    cfg.ProtectedSize(),
		sketch:           sketch,
		predictor:        pred,
	}
	c.admission = newAdmissionPolicy[K, V](sketch, pred, cfg.EnableAI, cfg.AIWeight)
	return c, nil
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// valueSizeProxy is the deterministic size surrogate feature 6 of the
// extractor needs: the length of the value's string-ification. The exact
// number matters less than it being stable across repeated calls for the
// same value, which fmt's %v formatting guarantees.
func valueSizeProxy[V any](v V) int {
	return len(fmt.Sprintf("%v", v))
}

// Get looks up key. On a hit it records the access for both the frequency
// sketch and the predictor's training buffer, and promotes the entry within
// its segment.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	primary, conflict := keyToHash(key)

	e, ok := c.store.get(primary, key)
	if !ok || e.conflict != conflict {
		c.stats.recordMiss()
		return zero, false
	}

	now := nowMillis()
	atomic.AddUint64(&e.accessCount, 1)
	atomic.StoreInt64(&e.lastAccessTime, now)
	c.sketch.increment(primary)
	c.stats.recordHit()

	// accessTimes is a plain (non-atomic) ring buffer, unlike accessCount and
	// lastAccessTime above, so its push must happen under evictLock alongside
	// the snapshot read rather than on the lock-free fast path.
	c.evictLock.Lock()
	e.accessTimes.push(now)
	snap := e.snapshot(now, valueSizeProxy(e.value))
	c.predictor.RecordAccess(snap, true)
	c.promote(e)
	value := e.value
	c.evictLock.Unlock()

	return value, true
}

// Put inserts or overwrites key's value. A new entry always enters the
// window; if the table is already at capacity, the current window head first
// contends with the probationary head for a main segment slot via the
// admission policy.
func (c *Cache[K, V]) Put(key K, value V) {
	primary, conflict := keyToHash(key)
	now := nowMillis()

	c.evictLock.Lock()
	defer c.evictLock.Unlock()

	if e, ok := c.store.get(primary, key); ok && e.conflict == conflict {
		e.value = value
		atomic.StoreInt64(&e.writeTime, now)
		atomic.StoreInt64(&e.lastAccessTime, now)
		c.sketch.increment(primary)
		c.promote(e)
		return
	}

	e := newEntry[K, V](key, value, primary, conflict, now, c.cfg.FeatureHistorySize)
	c.sketch.increment(primary)

	if c.size < int64(c.cfg.MaximumSize) {
		c.store.set(primary, key, e)
		c.window.add(e)
		c.size++
	} else {
		c.evictAndAdmit(now, e)
	}

	if c.sketch.shouldReset(10 * uint64(c.cfg.MaximumSize)) {
		c.sketch.reset()
	}
}

// promote moves e toward a hotter position following spec.md §4.6. Must be
// called with evictLock held.
func (c *Cache[K, V]) promote(e *entry[K, V]) {
	switch e.tag {
	case tagWindow:
		c.window.moveToTail(e)
	case tagProbationary:
		c.probationary.remove(e)
		if c.protected.Size() >= c.protectedSize {
			if demoted := c.protected.removeFirst(); demoted != nil {
				c.probationary.add(demoted)
			}
		}
		c.protected.add(e)
	case tagProtected:
		c.protected.moveToTail(e)
	}
}

// evictAndAdmit runs the admission contest between the current window head
// (the candidate) and the probationary head (the victim), per spec.md §4.6,
// then appends newEntry to the window. Must be called with evictLock held,
// and only when the table is already at capacity.
func (c *Cache[K, V]) evictAndAdmit(now int64, newEntry *entry[K, V]) {
	windowVictim := c.window.first()
	if windowVictim == nil {
		// Defensive: an empty window with a full table should not happen
		// given the segment invariants, but admitting directly keeps Put
		// total.
		c.store.set(newEntry.primaryHash, newEntry.key, newEntry)
		c.window.add(newEntry)
		c.size++
		return
	}

	probationaryVictim := c.probationary.first()

	admit := c.admission.shouldAdmit(now, windowVictim.primaryHash, victimHashOf(probationaryVictim), windowVictim, probationaryVictim)

	if admit {
		c.window.remove(windowVictim)
		if c.probationary.Size() >= c.probationarySize {
			if evicted := c.probationary.removeFirst(); evicted != nil {
				c.store.del(evicted.primaryHash, evicted.key)
				c.size--
				c.stats.recordEviction()
			}
		}
		c.probationary.add(windowVictim)
		c.stats.recordAdmission(c.predictor.Confidence() > 0.5)
	} else {
		c.window.remove(windowVictim)
		c.store.del(windowVictim.primaryHash, windowVictim.key)
		c.size--
		c.stats.recordRejection()
		c.stats.recordEviction()
	}

	c.store.set(newEntry.primaryHash, newEntry.key, newEntry)
	c.window.add(newEntry)
	c.size++
}

func victimHashOf[K comparable, V any](victim *entry[K, V]) uint64 {
	if victim == nil {
		return 0
	}
	return victim.primaryHash
}

// Remove deletes key if present.
func (c *Cache[K, V]) Remove(key K) {
	primary, conflict := keyToHash(key)

	c.evictLock.Lock()
	defer c.evictLock.Unlock()

	e, ok := c.store.get(primary, key)
	if !ok || e.conflict != conflict {
		return
	}

	switch e.tag {
	case tagWindow:
		c.window.remove(e)
	case tagProbationary:
		c.probationary.remove(e)
	case tagProtected:
		c.protected.remove(e)
	}
	c.store.del(primary, key)
	c.size--
}

// Clear empties the cache.
func (c *Cache[K, V]) Clear() {
	c.evictLock.Lock()
	defer c.evictLock.Unlock()

	c.store.clear()
	c.window.clear()
	c.probationary.clear()
	c.protected.clear()
	c.size = 0
}

// Size returns the number of resident entries.
func (c *Cache[K, V]) Size() int {
	c.evictLock.Lock()
	defer c.evictLock.Unlock()
	return int(c.size)
}

// Statistics returns a read-only snapshot of the cache's counters.
func (c *Cache[K, V]) Statistics() Statistics {
	return c.stats.snapshot()
}
