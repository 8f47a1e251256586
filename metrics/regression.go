// Package metrics は回帰モデルの評価指標を提供する
package metrics

import (
	"math"

	"github.com/YuminosukeSato/linreg/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PriceEpsilon は相対誤差の分母として扱える最小の絶対値
const PriceEpsilon = 1e-12

// residuals は yTrue - yPred を返す
func residuals(op string, yTrue, yPred *mat.VecDense) ([]float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	diff := make([]float64, n)
	for i := range diff {
		diff[i] = yTrue.AtVec(i) - yPred.AtVec(i)
	}
	return diff, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MSE = (1/n) * Σ(yTrue - yPred)²
	return floats.Dot(diff, diff) / float64(len(diff)), nil
}

// MSEMatrix は n×1 行列形式の入力に対してMSEを計算する
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, err := columnVec("MSEMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	p, err := columnVec("MSEMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return MSE(t, p)
}

// columnVec は n×1 行列をベクトルとして取り出す
func columnVec(op string, m mat.Matrix) (*mat.VecDense, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError(op, "empty matrix")
	}
	if c != 1 {
		return nil, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}
	return mat.NewVecDense(r, mat.Col(nil, 0, m)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MAE = (1/n) * Σ|yTrue - yPred|
	return floats.Norm(diff, 1) / float64(len(diff)), nil
}

// R2Score は決定係数（R²）を計算する
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	y := mat.Col(nil, 0, yTrue)
	yMean := stat.Mean(y, nil)

	// 全変動（TSS）と残差変動（RSS）
	var tss float64
	for _, v := range y {
		tss += (v - yMean) * (v - yMean)
	}
	rss := floats.Dot(diff, diff)

	// 全変動が0の場合（すべてのyTrueが同じ値）
	if tss == 0 {
		return 0, errors.Mark(
			errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)"),
			errors.ErrUndefinedMetric)
	}

	return 1 - rss/tss, nil
}

// Precision は相対絶対誤差を1から引いた値の平均を計算する
//
//	precision = (1/n) * Σ(1 - |yPred - yTrue| / yTrue)
//
// |yTrue| が PriceEpsilon 未満の要素が1つでもあると指標は定義できない。
// その場合は NaN と ErrUndefinedMetric でマークされたエラーを返す。
func Precision(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("Precision", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i, d := range diff {
		y := yTrue.AtVec(i)
		if math.Abs(y) < PriceEpsilon {
			return math.NaN(), errors.Mark(
				errors.Newf("Precision: target value %g at index %d is too close to zero", y, i),
				errors.ErrUndefinedMetric)
		}
		sum += 1 - math.Abs(d)/y
	}
	return sum / float64(len(diff)), nil
}
