package predictor

import (
	"math"
	"math/rand"
	"sync"
)

// Pattern classifies the access shape observed for an entry. It is advisory:
// the admission policy must stay correct if every entry classifies as
// Unknown.
type Pattern int

const (
	PatternUnknown Pattern = iota
	PatternHotSpot
	PatternTemporal
	PatternSequentialScan
	PatternWorkingSet
	PatternRandom
)

func (p Pattern) String() string {
	switch p {
	case PatternHotSpot:
		return "HOT_SPOT"
	case PatternTemporal:
		return "TEMPORAL"
	case PatternSequentialScan:
		return "SEQUENTIAL_SCAN"
	case PatternWorkingSet:
		return "WORKING_SET"
	case PatternRandom:
		return "RANDOM"
	default:
		return "UNKNOWN"
	}
}

// example is one (features, label) training pair, label 1 for a hit, 0
// otherwise. Grounded on the feature-weight gradient-descent update found
// across the retrieval pack's predictive-cache implementations (weight[i] +=
// learningRate * error * feature[i]), generalized here to a fixed 7-slot
// vector instead of a string-keyed weight map since the feature set is
// closed and known ahead of time.
type example struct {
	features [numFeatures]float64
	label    float64
}

// Predictor is an online linear regressor with a sigmoid output, trained by
// one gradient-descent epoch over a bounded FIFO buffer on every
// RecordAccess once the buffer holds at least minToTrain examples. Every
// exported method takes the Predictor's own mutex, so it is safe for
// concurrent use; the cache additionally calls it only under its eviction
// lock.
type Predictor struct {
	mu sync.Mutex // guards weights + buffer; callers may also serialize externally

	weights [numFeatures]float64

	buffer     []example
	maxBuffer  int
	minToTrain int

	confidence    float64
	trainingCount int64

	learningRate float64
}

// New builds a Predictor with weights drawn uniformly from roughly
// (-0.05, +0.05), per spec.md §4.4.
func New(maxTrainingExamples int, learningRate float64) *Predictor {
	p := &Predictor{
		maxBuffer:    maxTrainingExamples,
		learningRate: learningRate,
	}
	minToTrain := maxTrainingExamples / 10
	if minToTrain > 100 {
		minToTrain = 100
	}
	if minToTrain < 1 {
		minToTrain = 1
	}
	p.minToTrain = minToTrain

	for i := range p.weights {
		p.weights[i] = (rand.Float64()*2 - 1) * 0.05
	}
	return p
}

// Predict is side-effect-free: extract, normalize, dot with weights,
// sigmoid.
func (p *Predictor) Predict(s Snapshot) float64 {
	features := extractFeatures(s)

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.score(features)
}

func (p *Predictor) score(features [numFeatures]float64) float64 {
	var z float64
	for i, f := range features {
		z += p.weights[i] * f
	}
	return sigmoid(z)
}

// RecordAccess appends a training example for s with the given hit label,
// dropping the oldest example once the buffer exceeds maxTrainingExamples,
// and triggers a training epoch once enough examples have accumulated.
func (p *Predictor) RecordAccess(s Snapshot, hit bool) {
	features := extractFeatures(s)
	label := 0.0
	if hit {
		label = 1.0
	}

	p.mu.Lock()
	p.buffer = append(p.buffer, example{features: features, label: label})
	if len(p.buffer) > p.maxBuffer {
		p.buffer = p.buffer[len(p.buffer)-p.maxBuffer:]
	}
	shouldTrain := len(p.buffer) >= p.minToTrain
	p.mu.Unlock()

	if shouldTrain {
		p.Train()
	}
}

// Train runs one gradient-descent epoch over the entire buffer. For each
// example: p = sigmoid(<w,x>); err = label - p; g = err * p * (1-p); w[i] +=
// learningRate * g * x[i]. After the epoch, confidence is derived from the
// epoch's mean squared error.
func (p *Predictor) Train() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.buffer) == 0 {
		return
	}

	var sumSquaredErr float64
	for _, ex := range p.buffer {
		pred := p.score(ex.features)
		err := ex.label - pred
		g := err * pred * (1 - pred)
		for i := range p.weights {
			p.weights[i] += p.learningRate * g * ex.features[i]
		}
		sumSquaredErr += err * err
	}

	mse := sumSquaredErr / float64(len(p.buffer))
	p.confidence = math.Max(0, 1-mse)
	p.trainingCount++
}

// Confidence returns the effective confidence the admission policy blends
// against: the raw training confidence, damped so cold starts (few training
// epochs) never report high confidence regardless of how low the epoch's
// MSE happened to be.
func (p *Predictor) Confidence() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	warmup := float64(p.trainingCount) / 100
	if warmup > 1 {
		warmup = 1
	}
	if p.confidence < warmup {
		return p.confidence
	}
	return warmup
}

// ClassifyPattern evaluates the fixed, priority-ordered rules of spec.md
// §4.4 and returns the first match.
func ClassifyPattern(s Snapshot) Pattern {
	rate := accessRate(s)
	variance := intervalVariance(s.AccessTimestamps)
	ageMillis := s.NowMillis - s.CreatedAtMillis

	switch {
	case rate > 1.0 && variance < 1000:
		return PatternHotSpot
	case rate > 0.1 && variance > 10000:
		return PatternTemporal
	case s.AccessCount <= 2 && ageMillis < 60_000:
		return PatternSequentialScan
	case rate > 0.01 && rate < 1.0:
		return PatternWorkingSet
	default:
		return PatternRandom
	}
}

// Multiplier returns the pattern-specific multiplier admission applies to a
// predicted score, per spec.md §4.5.
func (p Pattern) Multiplier() float64 {
	switch p {
	case PatternSequentialScan:
		return 0.5
	case PatternHotSpot:
		return 1.3
	case PatternTemporal:
		return 1.1
	case PatternWorkingSet:
		return 1.2
	default:
		return 1.0
	}
}
