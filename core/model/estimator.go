package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。X は n×1（走行距離）、y は n×1（価格）
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Transformer はデータ変換のインターフェース
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}

// Regressor は学習・予測・評価ができる回帰モデル
type Regressor interface {
	Fitter
	Predictor

	// Score は決定係数（R²）を返す
	Score(X, y mat.Matrix) (float64, error)

	// Params は元の単位での係数を返す
	Params() Params
}
