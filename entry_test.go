package wtinylfu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimestampRingWraps(t *testing.T) {
	r := newTimestampRing(3)
	r.push(1)
	r.push(2)
	r.push(3)
	require.Equal(t, []int64{1, 2, 3}, r.values())

	r.push(4)
	require.Equal(t, []int64{2, 3, 4}, r.values())
	require.EqualValues(t, 4, r.last())
}

func TestTimestampRingMinCapacity(t *testing.T) {
	r := newTimestampRing(0)
	r.push(5)
	require.Equal(t, []int64{5}, r.values())
}

func TestNewEntrySnapshot(t *testing.T) {
	primary, conflict := keyToHash("k")
	e := newEntry[string, string]("k", "hello", primary, conflict, 1_000, 5)
	require.EqualValues(t, 1, e.accessCount)
	require.Equal(t, int64(1_000), e.creationTime)

	snap := e.snapshot(2_000, valueSizeProxy(e.value))
	require.EqualValues(t, 1, snap.AccessCount)
	require.Equal(t, int64(1_000), snap.CreatedAtMillis)
	require.Equal(t, int64(2_000), snap.NowMillis)
	require.Equal(t, []int64{1_000}, snap.AccessTimestamps)
}
