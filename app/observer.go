package app

import (
	"context"
	"time"

	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/dataset"
)

// FitReport describes one successful training run. It is passed to
// observers after the model has been persisted.
type FitReport struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration

	DataPath  string
	ModelPath string
	Samples   dataset.Samples

	Params     model.Params
	Iterations int
	Precision  float64
	R2         float64
	MSE        float64
	MAE        float64

	LearningRate float64
	Tolerance    float64
	MaxIter      int
	WarmStart    string
}

// Observer is an optional post-fit hook. Its failures are logged and never
// fail the run.
type Observer interface {
	Name() string
	OnFit(ctx context.Context, report FitReport) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc struct {
	ObserverName string
	Fn           func(ctx context.Context, report FitReport) error
}

// Name implements Observer.
func (f ObserverFunc) Name() string { return f.ObserverName }

// OnFit implements Observer.
func (f ObserverFunc) OnFit(ctx context.Context, report FitReport) error {
	return f.Fn(ctx, report)
}
