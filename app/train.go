// Package app wires the trainer, the model file and the optional observers
// into the train and predict workflows used by the commands, and maps their
// failures to operator messages.
package app

import (
	"context"
	"math"
	"time"

	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/dataset"
	"github.com/YuminosukeSato/linreg/linear"
	"github.com/YuminosukeSato/linreg/metrics"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

// Stage marks record which file a failure concerns.
var (
	errStageModelRead  = errors.New("reading model file")
	errStageModelWrite = errors.New("writing model file")
	errStageData       = errors.New("reading training data")
)

// TrainOptions configures Train.
type TrainOptions struct {
	DataPath  string
	ModelPath string

	// Trainer options, e.g. from config.Config.TrainerOptions. The
	// persisted model is appended as WithInitialParams.
	Trainer []linear.Option

	Observers []Observer
	Logger    log.Logger
}

// TrainResult is the outcome of a successful Train.
type TrainResult struct {
	FitReport

	// ModelExisted reports whether a model file was found before training.
	ModelExisted bool
	Gradient     [2]float64
	Stats        linear.Stats
}

// Train loads the current model (or the default), fits it to the sample
// file and persists the result. The model file is written only after a
// successful fit; on any failure it is left untouched. Observers run after
// the model is written.
func Train(ctx context.Context, opts TrainOptions) (res *TrainResult, err error) {
	defer errors.Recover(&err, "app.Train")

	runID := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	logger = logger.With(log.RunIDKey, runID, log.ComponentKey, "train")
	started := time.Now()

	initial, existed, err := model.LoadParamsOrDefault(opts.ModelPath)
	if err != nil {
		return nil, errors.Mark(err, errStageModelRead)
	}
	if !existed {
		logger.Info("Model file not found, starting from default parameters", log.PathKey, opts.ModelPath)
	}

	samples, err := dataset.LoadSamples(opts.DataPath)
	if err != nil {
		return nil, errors.Mark(err, errStageData)
	}
	logger.Debug("Training data loaded", log.PathKey, opts.DataPath, log.SamplesKey, samples.Len())

	trainerOpts := append([]linear.Option{}, opts.Trainer...)
	trainerOpts = append(trainerOpts, linear.WithInitialParams(initial), linear.WithLogger(logger))
	gd := linear.NewGradientDescent(trainerOpts...)

	X, y := samples.Matrices()
	if err := gd.Fit(X, y); err != nil {
		return nil, err
	}

	params := gd.Params()
	if err := model.SaveParams(opts.ModelPath, params); err != nil {
		return nil, errors.Mark(err, errStageModelWrite)
	}
	logger.Info("Model saved", log.PathKey, opts.ModelPath, log.Theta0Key, params.Theta0, log.Theta1Key, params.Theta1)

	g0, g1 := gd.Gradient()
	res = &TrainResult{
		FitReport: FitReport{
			RunID:        runID,
			StartedAt:    started.UTC(),
			Duration:     time.Since(started),
			DataPath:     opts.DataPath,
			ModelPath:    opts.ModelPath,
			Samples:      samples,
			Params:       params,
			Iterations:   gd.Iterations(),
			Precision:    gd.Precision(),
			LearningRate: gd.LearningRate(),
			Tolerance:    gd.Tolerance(),
			MaxIter:      gd.MaxIter(),
			WarmStart:    gd.WarmStartMode().String(),
		},
		ModelExisted: existed,
		Gradient:     [2]float64{g0, g1},
		Stats:        gd.Stats(),
	}
	res.R2, res.MSE, res.MAE = scores(gd, X, y)
	logger.Info("Fit scores", log.R2ScoreKey, res.R2, log.MSEKey, res.MSE)

	notifyObservers(ctx, logger, opts.Observers, res.FitReport)
	return res, nil
}

// scores returns R², MSE and MAE on the training sample. An undefined
// score is NaN.
func scores(gd *linear.GradientDescent, X, y mat.Matrix) (r2, mse, mae float64) {
	r2, mse, mae = math.NaN(), math.NaN(), math.NaN()

	pred, err := gd.Predict(X)
	if err != nil {
		return
	}
	n, _ := y.Dims()
	yTrue := mat.NewVecDense(n, mat.Col(nil, 0, y))
	yPred := mat.NewVecDense(n, mat.Col(nil, 0, pred))

	if v, err := metrics.R2Score(yTrue, yPred); err == nil {
		r2 = v
	}
	if v, err := metrics.MSE(yTrue, yPred); err == nil {
		mse = v
	}
	if v, err := metrics.MAE(yTrue, yPred); err == nil {
		mae = v
	}
	return
}

func notifyObservers(ctx context.Context, logger log.Logger, observers []Observer, report FitReport) {
	for _, o := range observers {
		err := errors.SafeExecute("observer "+o.Name(), func() error {
			return o.OnFit(ctx, report)
		})
		if err != nil {
			logger.Warn("Observer failed", err, "observer", o.Name())
			continue
		}
		logger.Debug("Observer done", "observer", o.Name())
	}
}
