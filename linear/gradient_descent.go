package linear

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/metrics"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
	"github.com/YuminosukeSato/linreg/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// progressInterval is how often the loop emits a debug record.
const progressInterval = 10_000

var columnNames = [2]string{"km", "price"}

// Stats holds the normalization statistics of one fit.
type Stats struct {
	MeanX, StdX float64
	MeanY, StdY float64
}

// GradientDescent fits price = theta0 + theta1*mileage by batch gradient
// descent on normalized data, then maps the coefficients back to the
// original units.
type GradientDescent struct {
	state *model.StateManager

	// hyperparameters
	learningRate float64
	tol          float64
	maxIter      int
	warmStart    WarmStart
	initial      model.Params
	logger       log.Logger

	// results
	params     model.Params
	normalized model.Params
	stats      Stats
	iterations int
	grad       [2]float64
	precision  float64
}

// NewGradientDescent creates a trainer with α=0.1, tol=1e-4 and a cap of
// 1,000,000 iterations unless overridden by opts.
//
// Example:
//
//	gd := linear.NewGradientDescent(linear.WithLearningRate(0.05))
//	if err := gd.Fit(X, y); err != nil {
//	    return err
//	}
//	p := gd.Params()
func NewGradientDescent(opts ...Option) *GradientDescent {
	gd := &GradientDescent{
		state:        model.NewStateManager(),
		learningRate: DefaultLearningRate,
		tol:          DefaultTolerance,
		maxIter:      DefaultMaxIter,
		warmStart:    WarmStartNone,
		initial:      model.DefaultParams,
	}
	for _, opt := range opts {
		opt(gd)
	}
	if gd.logger == nil {
		gd.logger = log.GetLogger()
	}
	gd.logger = gd.logger.With(log.ModelNameKey, "GradientDescent")
	return gd
}

func (gd *GradientDescent) validate() error {
	if !errors.IsFinite(gd.learningRate) || gd.learningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be a finite value greater than 0", gd.learningRate)
	}
	if !errors.IsFinite(gd.tol) || gd.tol <= 0 {
		return errors.NewValidationError("tolerance", "must be a finite value greater than 0", gd.tol)
	}
	if gd.maxIter < 0 {
		return errors.NewValidationError("max_iterations", "must be 0 (no cap) or positive", gd.maxIter)
	}
	if gd.warmStart < WarmStartNone || gd.warmStart > WarmStartLegacy {
		return errors.NewValidationError("warm_start", "unknown mode", int(gd.warmStart))
	}
	return nil
}

// Fit trains on X (n×1 mileage) and y (n×1 price).
//
// Errors are classified with the sentinels in pkg/errors: ErrEmptySample
// (which also matches ErrInvalidTrainingData), ErrInvalidTrainingData,
// ErrDivergedGradient and ErrNotConverged. On error the previous fit, if
// any, is discarded.
func (gd *GradientDescent) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "GradientDescent.Fit")

	if err := gd.validate(); err != nil {
		return err
	}
	gd.state.Reset()

	n, c := X.Dims()
	if n == 0 || c == 0 {
		return errors.Mark(
			errors.NewModelError("GradientDescent.Fit", "empty sample", errors.ErrEmptySample),
			errors.ErrInvalidTrainingData)
	}
	if c != 1 {
		return errors.NewDimensionError("GradientDescent.Fit", 1, c, 1)
	}
	ny, cy := y.Dims()
	if ny != n {
		return errors.NewDimensionError("GradientDescent.Fit", n, ny, 0)
	}
	if cy != 1 {
		return errors.NewValueError("GradientDescent.Fit", "y must be a column vector")
	}
	if err := errors.CheckMatrix("mileage", X, n, 1, 0); err != nil {
		return errors.Mark(err, errors.ErrInvalidTrainingData)
	}
	if err := errors.CheckMatrix("price", y, n, 1, 0); err != nil {
		return errors.Mark(err, errors.ErrInvalidTrainingData)
	}

	logger := gd.logger.With(log.OperationKey, log.OperationFit, log.PhaseKey, log.PhaseTraining)
	logger.Info("Training started",
		log.SamplesKey, n,
		log.LearningRateKey, gd.learningRate,
		log.ToleranceKey, gd.tol,
		log.MaxIterKey, gd.maxIter,
		log.WarmStartKey, gd.warmStart.String(),
	)
	start := time.Now()

	data := mat.NewDense(n, 2, nil)
	data.SetCol(0, mat.Col(nil, 0, X))
	data.SetCol(1, mat.Col(nil, 0, y))

	scaler := preprocessing.NewStandardScalerDefault()
	norm, err := scaler.FitTransform(data)
	if err != nil {
		return err
	}
	for _, j := range scaler.ZeroVarianceColumns() {
		logger.Warn("Column has zero variance; normalization yields non-finite values",
			log.ColumnKey, columnNames[j])
	}
	gd.stats = Stats{
		MeanX: scaler.Mean[0], StdX: scaler.Scale[0],
		MeanY: scaler.Mean[1], StdY: scaler.Scale[1],
	}

	xn := mat.NewVecDense(n, mat.Col(nil, 0, norm))
	yn := mat.NewVecDense(n, mat.Col(nil, 1, norm))

	t0, t1 := gd.initialNormalized()
	iterations, g0, g1, err := gd.descend(logger, xn, yn, t0, t1)
	gd.iterations = iterations
	gd.grad = [2]float64{g0, g1}
	if err != nil {
		logger.Error("Training failed", err, log.IterationKey, iterations)
		return err
	}

	// Denormalize
	nt0, nt1 := gd.normalized.Theta0, gd.normalized.Theta1
	theta1 := nt1 * gd.stats.StdY / gd.stats.StdX
	theta0 := nt0*gd.stats.StdY + gd.stats.MeanY - theta1*gd.stats.MeanX
	gd.params = model.Params{Theta0: theta0, Theta1: theta1}
	if err := errors.CheckNumericalStability("denormalize", []float64{theta0, theta1}, iterations); err != nil {
		return errors.Mark(err, errors.ErrDivergedGradient)
	}

	yVec := mat.NewVecDense(n, mat.Col(nil, 0, y))
	xVec := mat.NewVecDense(n, mat.Col(nil, 0, X))
	gd.precision, err = metrics.Precision(yVec, EstimateVec(nil, theta0, theta1, xVec))
	if err != nil {
		if !errors.Is(err, errors.ErrUndefinedMetric) {
			return err
		}
		gd.precision = math.NaN()
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "a price is zero or too close to zero", gd.precision))
	}

	gd.state.SetFitted(n)
	logger.Info("Training completed",
		log.IterationKey, iterations,
		log.Theta0Key, theta0,
		log.Theta1Key, theta1,
		log.PrecisionKey, gd.precision,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// initialNormalized returns the starting working coefficients.
func (gd *GradientDescent) initialNormalized() (float64, float64) {
	switch gd.warmStart {
	case WarmStartConvert:
		p, s := gd.initial, gd.stats
		t1 := p.Theta1 * s.StdX / s.StdY
		t0 := (p.Theta0 + p.Theta1*s.MeanX - s.MeanY) / s.StdY
		return t0, t1
	case WarmStartLegacy:
		return gd.initial.Theta0, gd.initial.Theta1
	default:
		return 0, 0
	}
}

// descend runs the gradient loop from (t0, t1) and stores the normalized
// result. It returns the number of updates performed and the last gradient.
func (gd *GradientDescent) descend(logger log.Logger, xn, yn *mat.VecDense, t0, t1 float64) (int, float64, float64, error) {
	n := float64(xn.Len())
	residual := mat.NewVecDense(xn.Len(), nil)
	debug := logger.Enabled(context.Background(), log.LevelDebug)

	for iter := 0; ; iter++ {
		EstimateVec(residual, t0, t1, xn)
		residual.SubVec(residual, yn)

		g0 := mat.Sum(residual) / n
		g1 := mat.Dot(residual, xn) / n

		if err := errors.CheckNumericalStability("gradient", []float64{g0, g1}, iter); err != nil {
			return iter, g0, g1, errors.Mark(err, errors.ErrDivergedGradient)
		}

		if math.Abs(g0) < gd.tol && math.Abs(g1) < gd.tol {
			gd.normalized = model.Params{Theta0: t0, Theta1: t1}
			return iter, g0, g1, nil
		}

		if gd.maxIter > 0 && iter >= gd.maxIter {
			w := errors.NewConvergenceWarning("GradientDescent", iter,
				fmt.Sprintf("gradient (%g, %g) still above tolerance %g", g0, g1, gd.tol))
			return iter, g0, g1, errors.Mark(errors.WithStack(w), errors.ErrNotConverged)
		}

		if debug && iter%progressInterval == 0 {
			logger.Debug("Gradient step",
				log.IterationKey, iter,
				log.GradientKey, []float64{g0, g1},
			)
		}

		t0 -= gd.learningRate * g0
		t1 -= gd.learningRate * g1
	}
}

// Predict returns theta0 + theta1*x for each row of X (n×1).
func (gd *GradientDescent) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := gd.state.RequireFitted("GradientDescent", "Predict"); err != nil {
		return nil, err
	}
	return predictMatrix("GradientDescent.Predict", gd.params, X)
}

// Score returns the coefficient of determination R² on (X, y).
func (gd *GradientDescent) Score(X, y mat.Matrix) (float64, error) {
	if err := gd.state.RequireFitted("GradientDescent", "Score"); err != nil {
		return 0, err
	}
	yPred, err := gd.Predict(X)
	if err != nil {
		return 0, err
	}
	r, _ := y.Dims()
	if r == 0 {
		return 0, errors.NewValueError("GradientDescent.Score", "empty target")
	}
	return metrics.R2Score(mat.NewVecDense(r, mat.Col(nil, 0, y)), yPred.(*mat.VecDense))
}

// IsFitted reports whether the last Fit succeeded.
func (gd *GradientDescent) IsFitted() bool { return gd.state.IsFitted() }

// Params returns the fitted coefficients in original units.
func (gd *GradientDescent) Params() model.Params { return gd.params }

// NormalizedParams returns the working coefficients in normalized space.
func (gd *GradientDescent) NormalizedParams() model.Params { return gd.normalized }

// Iterations returns the number of updates the last Fit performed.
func (gd *GradientDescent) Iterations() int { return gd.iterations }

// Gradient returns the last normalized gradient (g0, g1).
func (gd *GradientDescent) Gradient() (float64, float64) { return gd.grad[0], gd.grad[1] }

// Stats returns the normalization statistics of the last Fit.
func (gd *GradientDescent) Stats() Stats { return gd.stats }

// Precision returns mean(1 - |predict(x) - y| / y) over the training
// sample, or NaN when a price is too close to zero.
func (gd *GradientDescent) Precision() float64 { return gd.precision }

// LearningRate returns α.
func (gd *GradientDescent) LearningRate() float64 { return gd.learningRate }

// Tolerance returns the gradient tolerance.
func (gd *GradientDescent) Tolerance() float64 { return gd.tol }

// MaxIter returns the iteration cap; 0 means no cap.
func (gd *GradientDescent) MaxIter() int { return gd.maxIter }

// WarmStartMode returns the configured warm start mode.
func (gd *GradientDescent) WarmStartMode() WarmStart { return gd.warmStart }

var _ model.Regressor = (*GradientDescent)(nil)
