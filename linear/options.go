package linear

import (
	"strings"

	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

// Defaults for GradientDescent.
const (
	DefaultLearningRate = 0.1
	DefaultTolerance    = 1e-4
	DefaultMaxIter      = 1_000_000
)

// WarmStart selects how the initial coefficients are chosen.
type WarmStart int

const (
	// WarmStartNone starts from (0, 0) in normalized space.
	WarmStartNone WarmStart = iota
	// WarmStartConvert maps the initial params from original units into
	// normalized space before the first iteration.
	WarmStartConvert
	// WarmStartLegacy uses the initial params unchanged as normalized
	// coefficients.
	WarmStartLegacy
)

func (w WarmStart) String() string {
	switch w {
	case WarmStartNone:
		return "none"
	case WarmStartConvert:
		return "convert"
	case WarmStartLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseWarmStart converts "none", "convert" or "legacy" to a WarmStart.
func ParseWarmStart(s string) (WarmStart, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return WarmStartNone, nil
	case "convert":
		return WarmStartConvert, nil
	case "legacy":
		return WarmStartLegacy, nil
	default:
		return WarmStartNone, errors.NewValidationError("warm_start", "must be one of none, convert, legacy", s)
	}
}

// Option is a function that configures GradientDescent
type Option func(*GradientDescent)

// WithLearningRate sets the step size alpha
func WithLearningRate(alpha float64) Option {
	return func(gd *GradientDescent) {
		gd.learningRate = alpha
	}
}

// WithTol sets the gradient tolerance for convergence
func WithTol(tol float64) Option {
	return func(gd *GradientDescent) {
		gd.tol = tol
	}
}

// WithMaxIter sets the iteration cap. Zero disables the cap.
func WithMaxIter(n int) Option {
	return func(gd *GradientDescent) {
		gd.maxIter = n
	}
}

// WithWarmStart sets how WithInitialParams is interpreted
func WithWarmStart(mode WarmStart) Option {
	return func(gd *GradientDescent) {
		gd.warmStart = mode
	}
}

// WithInitialParams sets the previously persisted model, in original units
func WithInitialParams(p model.Params) Option {
	return func(gd *GradientDescent) {
		gd.initial = p
	}
}

// WithLogger sets the logger used for training progress
func WithLogger(l log.Logger) Option {
	return func(gd *GradientDescent) {
		gd.logger = l
	}
}
