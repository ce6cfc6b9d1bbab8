// Package linear は1変数の線形回帰モデルを提供する。
// meta.ExplainableBoostingMetaRegressorのベース回帰器として、
// 各特徴量の寄与を直線で近似したい場合に使う。
package linear

import (
	"github.com/YuminosukeSato/scibonus/core/model"
	"github.com/YuminosukeSato/scibonus/pkg/errors"
)

// UnivariateRegression は重み付き最小二乗法による1変数の線形回帰モデル。
// 閉形式解 slope = Σw(x-x̄)(y-ȳ) / Σw(x-x̄)² を使用する。
type UnivariateRegression struct {
	model.BaseEstimator

	slope_     float64
	intercept_ float64
}

// NewUnivariateRegression は新しい1変数線形回帰モデルを作成する
func NewUnivariateRegression() *UnivariateRegression {
	return &UnivariateRegression{}
}

// Clone は未学習のコピーを返す
func (u *UnivariateRegression) Clone() model.UnivariateRegressor {
	return NewUnivariateRegression()
}

// Fit はモデルを訓練データで学習させる。
// sampleWeightがnilの場合は全サンプルを等しく重み付けする。
func (u *UnivariateRegression) Fit(x, y, sampleWeight []float64) error {
	if len(x) == 0 {
		return errors.NewModelError("UnivariateRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(y) != len(x) {
		return errors.NewDimensionError("UnivariateRegression.Fit", len(x), len(y), 0)
	}
	if sampleWeight != nil && len(sampleWeight) != len(x) {
		return errors.NewDimensionError("UnivariateRegression.Fit", len(x), len(sampleWeight), 0)
	}

	var sw, swx, swy float64
	for i := range x {
		w := 1.0
		if sampleWeight != nil {
			w = sampleWeight[i]
		}
		sw += w
		swx += w * x[i]
		swy += w * y[i]
	}
	if sw == 0 {
		return errors.NewValueError("UnivariateRegression.Fit", "sample weights sum to zero")
	}
	meanX := swx / sw
	meanY := swy / sw

	var sxx, sxy float64
	for i := range x {
		w := 1.0
		if sampleWeight != nil {
			w = sampleWeight[i]
		}
		dx := x[i] - meanX
		sxx += w * dx * dx
		sxy += w * dx * (y[i] - meanY)
	}

	// xが定数列のときは切片のみのモデルに退化する
	if sxx == 0 {
		u.slope_ = 0
	} else {
		u.slope_ = sxy / sxx
	}
	u.intercept_ = meanY - u.slope_*meanX

	u.SetFitted()
	return nil
}

// Predict は入力データに対する予測を行う
func (u *UnivariateRegression) Predict(x []float64) ([]float64, error) {
	if !u.IsFitted() {
		return nil, errors.NewNotFittedError("UnivariateRegression", "Predict")
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = u.intercept_ + u.slope_*v
	}
	return out, nil
}

// Slope は学習した傾きを返す（Fit後のみ有効）
func (u *UnivariateRegression) Slope() float64 { return u.slope_ }

// Intercept は学習した切片を返す（Fit後のみ有効）
func (u *UnivariateRegression) Intercept() float64 { return u.intercept_ }
