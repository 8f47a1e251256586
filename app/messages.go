package app

import (
	"fmt"

	"github.com/YuminosukeSato/linreg/dataset"
	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// Describe maps an error from Train or Predict to the short message shown
// to the operator.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrInvalidMileage):
		return "Invalid mileage."

	case errors.Is(err, errors.ErrPermissionDenied):
		switch {
		case errors.Is(err, errStageData):
			return "Cannot read training data file."
		case errors.Is(err, errStageModelWrite):
			return "Cannot write to model file."
		default:
			return "Cannot read model file."
		}

	case errors.Is(err, errors.ErrMissingFile):
		switch {
		case errors.Is(err, errStageData):
			return fmt.Sprintf("Training data file '%s' not found.", dataPath(err))
		case errors.Is(err, errStageModelWrite):
			return "Cannot write to model file."
		default:
			return "Model file not found."
		}

	case errors.Is(err, errors.ErrMalformedModel):
		return "Invalid model."

	case errors.Is(err, errors.ErrEmptySample):
		return "Training data contains no samples."

	case errors.Is(err, dataset.ErrInvalidHeader):
		return "Invalid training data header."

	case errors.Is(err, errors.ErrInvalidTrainingData):
		return "Invalid training data format."

	case errors.Is(err, errors.ErrDivergedGradient):
		return "Gradient computation resulted in ambiguous values."

	case errors.Is(err, errors.ErrNotConverged):
		var cw *errors.ConvergenceWarning
		if errors.As(err, &cw) {
			return fmt.Sprintf("Training did not converge within %d iterations.", cw.Iterations)
		}
		return "Training did not converge."

	default:
		return "An error occurred: " + err.Error()
	}
}

func dataPath(err error) string {
	var de *errors.DataError
	if errors.As(err, &de) {
		return de.Path
	}
	return ""
}
