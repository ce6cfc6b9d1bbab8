package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// WeightedFitter はサンプル重み付きで学習可能なモデルのインターフェース。
// sampleWeightがnilの場合は全サンプル重み1として扱う。
type WeightedFitter interface {
	// FitWeighted はサンプル重みを指定してモデルを学習させる
	FitWeighted(X, y mat.Matrix, sampleWeight []float64) error
}

// Regressor は回帰モデルのインターフェース
type Regressor interface {
	Fitter
	Predictor
	// Score はモデルの決定係数（R²）を計算する
	Score(X, y mat.Matrix) (float64, error)
}
