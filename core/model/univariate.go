package model

// UnivariateRegressor は1次元入力の回帰モデルのインターフェース。
// meta.ExplainableBoostingMetaRegressorのベース回帰器として使われる。
//
// Cloneは同じハイパーパラメータを持ち学習状態を持たない新しい
// インスタンスを返さなければならない。ブースティングの各ラウンドは
// Cloneで得た未学習のモデルを残差に対して学習させる。
type UnivariateRegressor interface {
	// Clone は同じ設定・未学習の独立したコピーを返す
	Clone() UnivariateRegressor

	// Fit は1次元の入力xと目的変数yでモデルを学習させる。
	// sampleWeightはnilの場合、全サンプル重み1として扱う。
	Fit(x, y, sampleWeight []float64) error

	// Predict は各入力点に対する予測値を返す
	Predict(x []float64) ([]float64, error)
}
