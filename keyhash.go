package wtinylfu

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	farm "github.com/dgryski/go-farm"
)

// keyToHash maps an arbitrary comparable key to a primary hash (used for
// sketch row selection and shard/table addressing) and a secondary conflict
// hash (stored on the entry and compared on lookup to detect the rare case
// of two distinct keys sharing a primary hash). This mirrors the two-hash
// scheme implied by the teacher's key.go and z/z.go KeyToHash, generalized
// with cespare/xxhash/v2 as the primary hash and dgryski/go-farm as the
// independent secondary hash, exactly the pair the teacher's go.mod
// requires.
//
// Unlike z.KeyToHash, this never panics on an unrecognized key type: any
// comparable value falls back to a fmt.Sprint string representation. A
// library used from arbitrary call sites should not crash on a key type its
// author didn't anticipate.
func keyToHash[K comparable](key K) (primary, secondary uint64) {
	switch k := any(key).(type) {
	case string:
		return xxhash.Sum64String(k), farm.Fingerprint64([]byte(k))
	case []byte:
		return xxhash.Sum64(k), farm.Fingerprint64(k)
	case int:
		return uint64(k), 0
	case int8:
		return uint64(k), 0
	case int16:
		return uint64(k), 0
	case int32:
		return uint64(uint32(k)), 0
	case int64:
		return uint64(k), 0
	case uint:
		return uint64(k), 0
	case uint8:
		return uint64(k), 0
	case uint16:
		return uint64(k), 0
	case uint32:
		return uint64(k), 0
	case uint64:
		return k, 0
	default:
		s := fmt.Sprint(k)
		return xxhash.Sum64String(s), farm.Fingerprint64([]byte(s))
	}
}
