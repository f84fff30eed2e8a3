package config

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is the sentinel every *ConfigError wraps, so callers can
// test for a configuration problem generically via errors.Is without caring
// which field was at fault.
var ErrInvalidConfig = errors.New("invalid cache configuration")

// ConfigError names the offending field, the value supplied, and why it was
// rejected. It mirrors the constructor error checks the teacher's cache.go
// performs inline (rejecting a nil KeyToHash, a zero NumCounters, and so on)
// but centralizes them behind a single typed error instead of ad hoc
// errors.New calls, since this package validates many more fields.
type ConfigError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: field %q value %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func invalid(field string, value interface{}, reason string) error {
	return errors.WithStack(&ConfigError{Field: field, Value: value, Reason: reason})
}

func validate(c *Config) error {
	if c.MaximumSize <= 0 {
		return invalid("MaximumSize", c.MaximumSize, "must be > 0")
	}
	if c.WindowSize <= 0 {
		return invalid("WindowSize", c.WindowSize, "must be > 0")
	}
	if c.WindowSize > c.MaximumSize {
		return invalid("WindowSize", c.WindowSize, "must not exceed MaximumSize")
	}
	if c.FeatureHistorySize <= 0 {
		return invalid("FeatureHistorySize", c.FeatureHistorySize, "must be > 0")
	}
	if c.AIWeight < 0 || c.AIWeight > 1 {
		return invalid("AIWeight", c.AIWeight, "must be in [0, 1]")
	}
	if c.MaxTrainingExamples <= 0 {
		return invalid("MaxTrainingExamples", c.MaxTrainingExamples, "must be > 0")
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return invalid("LearningRate", c.LearningRate, "must be in (0, 1]")
	}
	return nil
}
