package linear

import (
	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Predictor answers price queries from a fitted coefficient pair.
type Predictor struct {
	params model.Params
}

// NewPredictor returns a Predictor for p.
func NewPredictor(p model.Params) *Predictor {
	return &Predictor{params: p}
}

// LoadPredictor reads the model file at path. A missing file is reported as
// ErrMissingFile, never as the default model.
func LoadPredictor(path string) (*Predictor, error) {
	p, err := model.LoadParams(path)
	if err != nil {
		return nil, err
	}
	return NewPredictor(p), nil
}

// Params returns the coefficients the predictor uses.
func (p *Predictor) Params() model.Params { return p.params }

// PredictPrice returns the estimated price for mileage.
func (p *Predictor) PredictPrice(mileage float64) float64 {
	return Estimate(p.params.Theta0, p.params.Theta1, mileage)
}

// Predict estimates a price for each row of X (n×1).
func (p *Predictor) Predict(X mat.Matrix) (mat.Matrix, error) {
	return predictMatrix("Predictor.Predict", p.params, X)
}

func predictMatrix(op string, p model.Params, X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError(op, "empty input")
	}
	if c != 1 {
		return nil, errors.NewDimensionError(op, 1, c, 1)
	}
	return EstimateVec(nil, p.Theta0, p.Theta1, mat.NewVecDense(r, mat.Col(nil, 0, X))), nil
}

var _ model.Predictor = (*Predictor)(nil)
