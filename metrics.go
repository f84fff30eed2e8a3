package wtinylfu

import (
	"fmt"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

// Statistics holds the cache's lock-free monotone counters (spec.md §4.7).
// Each field is independently atomic; reads across fields are not
// cross-consistent, matching the teacher's own metrics.go contract ("the
// data is eventually consistent").
type Statistics struct {
	HitCount                uint64
	MissCount               uint64
	EvictionCount           uint64
	AdmissionCount          uint64
	RejectionCount          uint64
	TotalAccessCount        uint64
	AIAdmissionCount        uint64
	FrequencyAdmissionCount uint64
}

// stats is the mutable atomic-counter holder embedded in the cache; calling
// snapshot() copies it out into an immutable Statistics value for callers,
// the same split the teacher's Metrics (mutable, internal) / its rendered
// String() (read-only view) draws.
type stats struct {
	hitCount                atomic.Uint64
	missCount               atomic.Uint64
	evictionCount           atomic.Uint64
	admissionCount          atomic.Uint64
	rejectionCount          atomic.Uint64
	totalAccessCount        atomic.Uint64
	aiAdmissionCount        atomic.Uint64
	frequencyAdmissionCount atomic.Uint64
}

func (s *stats) recordHit() {
	s.hitCount.Add(1)
	s.totalAccessCount.Add(1)
}

func (s *stats) recordMiss() {
	s.missCount.Add(1)
	s.totalAccessCount.Add(1)
}

func (s *stats) recordEviction() {
	s.evictionCount.Add(1)
}

func (s *stats) recordAdmission(aiDecision bool) {
	s.admissionCount.Add(1)
	if aiDecision {
		s.aiAdmissionCount.Add(1)
	} else {
		s.frequencyAdmissionCount.Add(1)
	}
}

func (s *stats) recordRejection() {
	s.rejectionCount.Add(1)
}

// snapshot copies every counter into an immutable Statistics value.
func (s *stats) snapshot() Statistics {
	return Statistics{
		HitCount:                s.hitCount.Load(),
		MissCount:               s.missCount.Load(),
		EvictionCount:           s.evictionCount.Load(),
		AdmissionCount:          s.admissionCount.Load(),
		RejectionCount:          s.rejectionCount.Load(),
		TotalAccessCount:        s.totalAccessCount.Load(),
		AIAdmissionCount:        s.aiAdmissionCount.Load(),
		FrequencyAdmissionCount: s.frequencyAdmissionCount.Load(),
	}
}

// HitRate is hits / (hits + misses), 0 when the denominator is 0.
func (s Statistics) HitRate() float64 {
	total := s.HitCount + s.MissCount
	if total == 0 {
		return 0
	}
	return float64(s.HitCount) / float64(total)
}

// AdmissionRate is admissions / (admissions + rejections), 0 when the
// denominator is 0.
func (s Statistics) AdmissionRate() float64 {
	total := s.AdmissionCount + s.RejectionCount
	if total == 0 {
		return 0
	}
	return float64(s.AdmissionCount) / float64(total)
}

// AIInfluenceRate is ai_admissions / admissions, 0 when there have been no
// admissions.
func (s Statistics) AIInfluenceRate() float64 {
	if s.AdmissionCount == 0 {
		return 0
	}
	return float64(s.AIAdmissionCount) / float64(s.AdmissionCount)
}

// String renders the counters and derived rates as a human-readable
// one-liner, in the spirit of the teacher's Metrics.String(), using
// humanize.Comma for the raw counts the way the teacher's go.mod pulls in
// dustin/go-humanize for exactly this purpose.
func (s Statistics) String() string {
	return fmt.Sprintf(
		"hits: %s, misses: %s, hit-rate: %.3f, evictions: %s, admissions: %s, rejections: %s, admission-rate: %.3f, ai-influence-rate: %.3f",
		humanize.Comma(int64(s.HitCount)),
		humanize.Comma(int64(s.MissCount)),
		s.HitRate(),
		humanize.Comma(int64(s.EvictionCount)),
		humanize.Comma(int64(s.AdmissionCount)),
		humanize.Comma(int64(s.RejectionCount)),
		s.AdmissionRate(),
		s.AIInfluenceRate(),
	)
}
