package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/linreg/linear"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

// ErrInvalidMileage is returned when the mileage input is not a finite number.
var ErrInvalidMileage = errors.New("invalid mileage")

// ParseMileage parses operator input as a finite float.
func ParseMileage(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !errors.IsFinite(v) {
		return 0, errors.Mark(errors.Newf("mileage %q is not a finite number", s), ErrInvalidMileage)
	}
	return v, nil
}

// Predict loads the model at modelPath and estimates the price for mileage.
// A missing model file is an error, never the default model.
func Predict(_ context.Context, modelPath string, mileage float64, logger log.Logger) (price float64, err error) {
	defer errors.Recover(&err, "app.Predict")

	if logger == nil {
		logger = log.GetLogger()
	}

	p, err := linear.LoadPredictor(modelPath)
	if err != nil {
		return 0, errors.Mark(err, errStageModelRead)
	}

	price = p.PredictPrice(mileage)
	if err := errors.CheckScalar("predict", price, 0); err != nil {
		return 0, err
	}
	logger.Debug("Prediction",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.MileageKey, mileage,
		log.PriceKey, price,
	)
	return price, nil
}
