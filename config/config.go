// Package config builds validated Cache configuration. The functional-option
// shape follows the teacher's tinylfu/option.go (Option func(*Policy)):
// defaults are applied first, then options in call order, then validation,
// rather than validating inside each option as WithSegmentation does (that
// approach panics on bad input, which is wrong for values arriving from a
// config file rather than a compile-time literal).
package config

// Config is the validated, immutable parameter bundle a Cache is built from.
type Config struct {
	MaximumSize          int
	WindowSize           int
	FeatureHistorySize   int
	EnableAI             bool
	AIWeight             float64
	MaxTrainingExamples  int
	LearningRate         float64
}

// Option mutates a Config under construction.
type Option func(*builder)

type builder struct {
	cfg                  Config
	windowSizeExplicit   bool
}

func defaults() builder {
	b := builder{cfg: Config{
		MaximumSize:         10_000,
		WindowSize:          100,
		FeatureHistorySize:  10,
		EnableAI:            true,
		AIWeight:            0.7,
		MaxTrainingExamples: 1000,
		LearningRate:        0.01,
	}}
	return b
}

// New builds a Config from defaults plus opts, in call order, then validates
// the result. Construction fails with a *ConfigError on the first invalid
// field found.
func New(opts ...Option) (*Config, error) {
	b := defaults()
	for _, opt := range opts {
		opt(&b)
	}
	if err := validate(&b.cfg); err != nil {
		return nil, err
	}
	cfg := b.cfg
	return &cfg, nil
}

// WithMaximumSize sets the resident-entry cap. Unless WithWindowSize has also
// been supplied, it re-derives WindowSize = max(1, maximumSize/100), matching
// spec's auto-derivation rule regardless of option call order.
func WithMaximumSize(n int) Option {
	return func(b *builder) {
		b.cfg.MaximumSize = n
		if !b.windowSizeExplicit {
			b.cfg.WindowSize = deriveWindowSize(n)
		}
	}
}

func WithWindowSize(n int) Option {
	return func(b *builder) {
		b.cfg.WindowSize = n
		b.windowSizeExplicit = true
	}
}

func WithFeatureHistorySize(n int) Option {
	return func(b *builder) { b.cfg.FeatureHistorySize = n }
}

func WithEnableAI(enabled bool) Option {
	return func(b *builder) { b.cfg.EnableAI = enabled }
}

func WithAIWeight(w float64) Option {
	return func(b *builder) { b.cfg.AIWeight = w }
}

func WithMaxTrainingExamples(n int) Option {
	return func(b *builder) { b.cfg.MaxTrainingExamples = n }
}

func WithLearningRate(r float64) Option {
	return func(b *builder) { b.cfg.LearningRate = r }
}

func deriveWindowSize(maximumSize int) int {
	w := maximumSize / 100
	if w < 1 {
		w = 1
	}
	return w
}

// ProbationarySize and ProtectedSize derive the main-segment split per
// spec.md §3: probationary gets 20% of the main segment (maximum_size -
// window_size), protected gets the remainder.
func (c *Config) ProbationarySize() int {
	main := c.MaximumSize - c.WindowSize
	if main < 0 {
		main = 0
	}
	return int(float64(main) * 0.2)
}

func (c *Config) ProtectedSize() int {
	main := c.MaximumSize - c.WindowSize
	if main < 0 {
		main = 0
	}
	return main - c.ProbationarySize()
}
