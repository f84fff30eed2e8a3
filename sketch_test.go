package wtinylfu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCmSketchIncrementEstimate(t *testing.T) {
	s := newCmSketch(16)
	s.increment(0)
	s.increment(0)
	s.increment(0)
	s.increment(0)
	require.EqualValues(t, 4, s.estimate(0))
	require.EqualValues(t, 0, s.estimate(1))
}

func TestCmSketchSaturates(t *testing.T) {
	s := newCmSketch(16)
	for i := 0; i < 20; i++ {
		s.increment(5)
	}
	require.EqualValues(t, 15, s.estimate(5))
}

func TestCmSketchReset(t *testing.T) {
	s := newCmSketch(16)
	for i := 0; i < 8; i++ {
		s.increment(3)
	}
	before := s.estimate(3)
	s.reset()
	require.LessOrEqual(t, s.estimate(3), before)
}

func TestCmSketchShouldReset(t *testing.T) {
	s := newCmSketch(16)
	require.False(t, s.shouldReset(5))
	for i := 0; i < 5; i++ {
		s.increment(uint64(i))
	}
	require.True(t, s.shouldReset(5))
}

func TestNext2Power(t *testing.T) {
	cases := map[uint64]uint64{
		0:  1,
		1:  1,
		2:  2,
		3:  4,
		17: 32,
		64: 64,
	}
	for in, want := range cases {
		require.Equal(t, want, next2Power(in))
	}
}
