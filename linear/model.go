// Package linear implements the univariate linear model
// price = theta0 + theta1 * mileage, its batch gradient descent trainer
// and a predictor for persisted coefficients.
package linear

import "gonum.org/v1/gonum/mat"

// Estimate returns theta0 + theta1*mileage.
func Estimate(theta0, theta1, mileage float64) float64 {
	return theta0 + theta1*mileage
}

// EstimateVec applies Estimate element-wise to x and stores the result in dst.
// A nil dst, or one whose length differs from x, is replaced by a new vector.
func EstimateVec(dst *mat.VecDense, theta0, theta1 float64, x mat.Vector) *mat.VecDense {
	n := x.Len()
	if n == 0 {
		return &mat.VecDense{}
	}
	if dst == nil || dst.Len() != n {
		dst = mat.NewVecDense(n, nil)
	}
	for i := 0; i < n; i++ {
		dst.SetVec(i, Estimate(theta0, theta1, x.AtVec(i)))
	}
	return dst
}
