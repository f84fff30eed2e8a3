package wtinylfu

import "github.com/dhrubacb/wtinylfu/predictor"

// admissionPolicy decides whether a candidate should displace a victim. It
// is the generalization of the teacher's AdmissionPolicy interface
// (tinylfu/option.go: Record/Admit over plain frequency) into the blended
// frequency-plus-learned-score comparison spec.md §4.5 calls for; unlike the
// teacher's interface this is a concrete type since there is exactly one
// policy shape in scope, not a pluggable strategy.
type admissionPolicy[K comparable, V any] struct {
	sketch    *cmSketch
	predictor *predictor.Predictor
	enableAI  bool
	aiWeight  float64
}

func newAdmissionPolicy[K comparable, V any](sketch *cmSketch, pred *predictor.Predictor, enableAI bool, aiWeight float64) *admissionPolicy[K, V] {
	return &admissionPolicy[K, V]{
		sketch:    sketch,
		predictor: pred,
		enableAI:  enableAI,
		aiWeight:  aiWeight,
	}
}

func normalizeFrequency(estimate uint64) float64 {
	f := float64(estimate) / 15
	if f > 1 {
		f = 1
	}
	if f < 0 {
		f = 0
	}
	return f
}

// shouldAdmit implements spec.md §4.5 verbatim: a nil victim always admits;
// below the AI confidence threshold (or with AI disabled outright) the
// decision is pure frequency comparison with strict inequality; otherwise
// candidate and victim scores blend sketch frequency with a pattern-adjusted
// predicted value, and the candidate needs a strictly higher blended score.
func (a *admissionPolicy[K, V]) shouldAdmit(now int64, candidateHash, victimHash uint64, candidate, victim *entry[K, V]) bool {
	if victim == nil {
		return true
	}

	cf := normalizeFrequency(a.sketch.estimate(candidateHash))
	vf := normalizeFrequency(a.sketch.estimate(victimHash))

	if !a.enableAI || a.predictor.Confidence() < 0.3 {
		return cf > vf
	}

	candSnap := candidate.snapshot(now, valueSizeProxy(candidate.value))
	victSnap := victim.snapshot(now, valueSizeProxy(victim.value))

	cv := a.predictor.Predict(candSnap)
	vv := a.predictor.Predict(victSnap)

	candidate.pattern = predictor.ClassifyPattern(candSnap)
	victim.pattern = predictor.ClassifyPattern(victSnap)

	cv = clamp01(cv * candidate.pattern.Multiplier())
	vv = clamp01(vv * victim.pattern.Multiplier())

	candidate.predictedValue = cv
	victim.predictedValue = vv

	candScore := a.aiWeight*cv + (1-a.aiWeight)*cf
	victScore := a.aiWeight*vv + (1-a.aiWeight)*vf

	return candScore > victScore
}

func clamp01(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < 0 {
		return 0
	}
	return x
}
