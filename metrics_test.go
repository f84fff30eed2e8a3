package wtinylfu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatisticsDerivedRatesZeroDenominator(t *testing.T) {
	var s Statistics
	require.Equal(t, 0.0, s.HitRate())
	require.Equal(t, 0.0, s.AdmissionRate())
	require.Equal(t, 0.0, s.AIInfluenceRate())
}

func TestStatisticsDerivedRates(t *testing.T) {
	s := Statistics{
		HitCount:         3,
		MissCount:        1,
		AdmissionCount:   4,
		RejectionCount:   1,
		AIAdmissionCount: 2,
	}
	require.Equal(t, 0.75, s.HitRate())
	require.Equal(t, 0.8, s.AdmissionRate())
	require.Equal(t, 0.5, s.AIInfluenceRate())
}

func TestStatisticsString(t *testing.T) {
	var st stats
	st.recordHit()
	st.recordMiss()
	snap := st.snapshot()
	require.Contains(t, snap.String(), "hits: 1")
	require.Contains(t, snap.String(), "misses: 1")
}
