package model

import (
	"fmt"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// Params is the fitted coefficient pair in original units:
// price = Theta0 + Theta1 * mileage.
type Params struct {
	Theta0 float64 // intercept
	Theta1 float64 // slope
}

// DefaultParams is the model used when no model file exists yet.
var DefaultParams = Params{}

// Validate reports a MalformedModel error when either coefficient is not finite.
func (p Params) Validate() error {
	if !errors.IsFinite(p.Theta0) || !errors.IsFinite(p.Theta1) {
		return errors.Mark(
			errors.NewValueError("Params.Validate", fmt.Sprintf("coefficients must be finite, got (%v, %v)", p.Theta0, p.Theta1)),
			errors.ErrMalformedModel,
		)
	}
	return nil
}

// String formats the pair the way it is persisted.
func (p Params) String() string {
	return formatParams(p)
}
