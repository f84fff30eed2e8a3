package wtinylfu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestEntry(key string) *entry[string, int] {
	primary, conflict := keyToHash(key)
	return newEntry[string, int](key, 0, primary, conflict, 1000, 10)
}

func TestSegmentAddRemoveFirst(t *testing.T) {
	s := newSegment[string, int](tagWindow)
	a, b, c := newTestEntry("a"), newTestEntry("b"), newTestEntry("c")

	s.add(a)
	s.add(b)
	s.add(c)
	require.Equal(t, 3, s.Size())
	require.Equal(t, a, s.first())

	require.Equal(t, a, s.removeFirst())
	require.Equal(t, 2, s.Size())
	require.Equal(t, b, s.first())
}

func TestSegmentMoveToTail(t *testing.T) {
	s := newSegment[string, int](tagWindow)
	a, b, c := newTestEntry("a"), newTestEntry("b"), newTestEntry("c")
	s.add(a)
	s.add(b)
	s.add(c)

	s.moveToTail(a)
	require.Equal(t, b, s.first())
	require.Equal(t, a, s.tail)

	// moving the current tail is a no-op
	s.moveToTail(a)
	require.Equal(t, a, s.tail)
}

func TestSegmentRemoveSetsTagNone(t *testing.T) {
	s := newSegment[string, int](tagWindow)
	a := newTestEntry("a")
	s.add(a)
	require.Equal(t, tagWindow, a.tag)
	s.remove(a)
	require.Equal(t, tagNone, a.tag)
	require.Nil(t, s.first())
}

func TestSegmentClear(t *testing.T) {
	s := newSegment[string, int](tagWindow)
	s.add(newTestEntry("a"))
	s.add(newTestEntry("b"))
	s.clear()
	require.Equal(t, 0, s.Size())
	require.Nil(t, s.first())
}
