// Package meta provides meta estimators that wrap pluggable base models.
package meta

import (
	"github.com/YuminosukeSato/scibonus/core/model"
	"github.com/YuminosukeSato/scibonus/core/parallel"
	"github.com/YuminosukeSato/scibonus/metrics"
	scierrors "github.com/YuminosukeSato/scibonus/pkg/errors"
	"github.com/YuminosukeSato/scibonus/pkg/log"
	"github.com/YuminosukeSato/scibonus/tree"
	"gonum.org/v1/gonum/mat"
)

// ExplainableBoostingMetaRegressor は加法モデル
//
//	f(x) = mean(y) + Σ_j g_j(x_j)
//
// を学習するメタ回帰器。各g_jは特徴量jの観測範囲を等間隔に分割した
// グリッド上の学習済み曲線で、任意の1次元ベース回帰器による
// ラウンドロビン・ブースティングで構築される。
//
// interpretmlのExplainableBoostingRegressorと同様に動作するが、木に
// 限らず任意のベース回帰器を指定できる。例えばisotonic.IsotonicRegressionを
// 使えば、指定した特徴量について単調なモデルを作れる。
type ExplainableBoostingMetaRegressor struct {
	model.BaseEstimator

	// BaseRegressor は全特徴量に適用する単一のベース回帰器。
	// BaseRegressorsと同時に指定した場合はBaseRegressorsが優先される。
	// どちらもnilの場合は深さ4の回帰木が使われる。
	BaseRegressor model.UnivariateRegressor

	// BaseRegressors は特徴量ごとのベース回帰器。
	// 長さは特徴量数と一致しなければならない。
	BaseRegressors []model.UnivariateRegressor

	// MaxRounds はブースティングの総ラウンド数 (デフォルト: 5000)
	MaxRounds int

	// LearningRate は各ラウンドの寄与に掛かる縮小係数 (デフォルト: 0.01)
	LearningRate float64

	// GridPoints は特徴量ごとのグリッド解像度 (デフォルト: 1000)
	GridPoints int

	// Fitted state, rebuilt from scratch on every Fit.
	domains_   [][]float64
	outputs_   [][]float64
	mean_      float64
	nFeatures_ int
}

// NewExplainableBoostingMetaRegressor はデフォルト設定のメタ回帰器を作成する
func NewExplainableBoostingMetaRegressor() *ExplainableBoostingMetaRegressor {
	return &ExplainableBoostingMetaRegressor{
		MaxRounds:    5000,
		LearningRate: 0.01,
		GridPoints:   1000,
	}
}

// WithBaseRegressor sets a single base regressor applied to every feature.
func (e *ExplainableBoostingMetaRegressor) WithBaseRegressor(r model.UnivariateRegressor) *ExplainableBoostingMetaRegressor {
	e.BaseRegressor = r
	return e
}

// WithBaseRegressors sets one base regressor per feature. The number of
// regressors must equal the number of feature columns passed to Fit.
func (e *ExplainableBoostingMetaRegressor) WithBaseRegressors(rs ...model.UnivariateRegressor) *ExplainableBoostingMetaRegressor {
	e.BaseRegressors = rs
	return e
}

// WithMaxRounds sets the total number of boosting rounds.
func (e *ExplainableBoostingMetaRegressor) WithMaxRounds(n int) *ExplainableBoostingMetaRegressor {
	e.MaxRounds = n
	return e
}

// WithLearningRate sets the shrinkage factor. Should be quite small.
func (e *ExplainableBoostingMetaRegressor) WithLearningRate(lr float64) *ExplainableBoostingMetaRegressor {
	e.LearningRate = lr
	return e
}

// WithGridPoints sets the per-feature grid resolution. More grid points
// give more detailed explanations and a better fit, at the cost of speed.
func (e *ExplainableBoostingMetaRegressor) WithGridPoints(n int) *ExplainableBoostingMetaRegressor {
	e.GridPoints = n
	return e
}

// Fit はモデルを訓練データで学習させる。
// Xはn_samples×n_featuresの行列、yはn_samples×1の列ベクトル。
func (e *ExplainableBoostingMetaRegressor) Fit(X, y mat.Matrix) error {
	return e.FitWeighted(X, y, nil)
}

// FitWeighted はサンプル重み付きでモデルを学習させる。
// sampleWeightがnilの場合は全サンプル重み1として扱う。
func (e *ExplainableBoostingMetaRegressor) FitWeighted(X, y mat.Matrix, sampleWeight []float64) (err error) {
	defer scierrors.Recover(&err, "ExplainableBoostingMetaRegressor.Fit")

	const op = "ExplainableBoostingMetaRegressor.Fit"

	r, c := X.Dims()
	yr, yc := y.Dims()

	if r == 0 || c == 0 {
		return scierrors.NewModelError(op, "empty data", scierrors.ErrEmptyData)
	}
	if yr != r {
		return scierrors.NewDimensionError(op, r, yr, 0)
	}
	if yc != 1 {
		return scierrors.NewValueError(op, "y must be a column vector")
	}
	if sampleWeight != nil {
		if len(sampleWeight) != r {
			return scierrors.NewDimensionError(op, r, len(sampleWeight), 0)
		}
		for _, w := range sampleWeight {
			if w < 0 {
				return scierrors.NewValidationError("sample_weight", "must be non-negative", w)
			}
		}
	}
	if e.LearningRate <= 0 {
		return scierrors.NewValidationError("learning_rate", "must be positive", e.LearningRate)
	}
	if e.GridPoints <= 0 {
		return scierrors.NewValidationError("grid_points", "must be positive", e.GridPoints)
	}
	if e.MaxRounds < 0 {
		return scierrors.NewValidationError("max_rounds", "must be non-negative", e.MaxRounds)
	}

	regressors, err := e.resolveBaseRegressors(c)
	if err != nil {
		return err
	}

	logger := log.GetLoggerWithName("meta.explainable_boosting")
	logger.Debug("training started",
		log.OperationKey, "fit",
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.RoundsKey, e.MaxRounds,
		log.LearningRateKey, e.LearningRate,
		log.GridPointsKey, e.GridPoints,
	)

	e.nFeatures_ = c

	// Per-feature column copies; each boosting round fits on one of them.
	columns := make([][]float64, c)
	for j := 0; j < c; j++ {
		col := make([]float64, r)
		for i := 0; i < r; i++ {
			col[i] = X.At(i, j)
		}
		columns[j] = col
	}

	// Grids span each feature's observed range, endpoints inclusive.
	e.domains_ = make([][]float64, c)
	e.outputs_ = make([][]float64, c)
	for j := 0; j < c; j++ {
		lo, hi := minMax(columns[j])
		e.domains_[j] = linspace(lo, hi, e.GridPoints)
		e.outputs_[j] = make([]float64, e.GridPoints)
	}

	var mean float64
	for i := 0; i < r; i++ {
		mean += y.At(i, 0)
	}
	mean /= float64(r)
	e.mean_ = mean

	// Running residual, detached from the caller's y.
	residual := make([]float64, r)
	for i := 0; i < r; i++ {
		residual[i] = y.At(i, 0) - mean
	}

	if err := e.boost(columns, residual, sampleWeight, regressors); err != nil {
		return err
	}

	e.SetFitted()
	logger.Debug("training finished", log.OperationKey, "fit")
	return nil
}

// boost runs the round-robin boosting loop. The schedule is deterministic:
// round i always works on feature i mod nFeatures, regardless of how much
// residual each feature still explains.
func (e *ExplainableBoostingMetaRegressor) boost(columns [][]float64, residual, sampleWeight []float64, regressors []model.UnivariateRegressor) error {
	const op = "ExplainableBoostingMetaRegressor.Fit"

	for i := 0; i < e.MaxRounds; i++ {
		j := i % e.nFeatures_

		h := regressors[j].Clone()
		if err := h.Fit(columns[j], residual, sampleWeight); err != nil {
			return scierrors.Wrapf(err, "%s: round %d (feature %d)", op, i, j)
		}

		gridPred, err := h.Predict(e.domains_[j])
		if err != nil {
			return scierrors.Wrapf(err, "%s: round %d (feature %d)", op, i, j)
		}
		if len(gridPred) != len(e.outputs_[j]) {
			return scierrors.NewDimensionError(op, len(e.outputs_[j]), len(gridPred), 0)
		}
		for k := range gridPred {
			e.outputs_[j][k] += e.LearningRate * gridPred[k]
		}

		rowPred, err := h.Predict(columns[j])
		if err != nil {
			return scierrors.Wrapf(err, "%s: round %d (feature %d)", op, i, j)
		}
		for k := range rowPred {
			residual[k] -= e.LearningRate * rowPred[k]
		}
	}
	return nil
}

// resolveBaseRegressors expands the single-or-per-feature configuration
// into exactly one regressor per feature.
func (e *ExplainableBoostingMetaRegressor) resolveBaseRegressors(nFeatures int) ([]model.UnivariateRegressor, error) {
	if e.BaseRegressors != nil {
		if len(e.BaseRegressors) != nFeatures {
			return nil, scierrors.NewValidationError(
				"base_regressors",
				"number of regressors should be the same as the number of features",
				len(e.BaseRegressors),
			)
		}
		return e.BaseRegressors, nil
	}

	single := e.BaseRegressor
	if single == nil {
		single = tree.NewDecisionTreeRegressor()
	}

	regressors := make([]model.UnivariateRegressor, nFeatures)
	for j := range regressors {
		regressors[j] = single
	}
	return regressors, nil
}

// Predict は各行に対する予測値をn_samples×1の行列で返す。
// 各特徴量について最近傍のグリッド点（同距離なら低いインデックス）の
// 曲線値を引き、全特徴量の合計に全体平均を加える。
func (e *ExplainableBoostingMetaRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !e.IsFitted() {
		return nil, scierrors.NewNotFittedError("ExplainableBoostingMetaRegressor", "Predict")
	}

	r, c := X.Dims()
	if c != e.nFeatures_ {
		return nil, scierrors.NewDimensionError("ExplainableBoostingMetaRegressor.Predict", e.nFeatures_, c, 1)
	}

	const parallelThreshold = 256

	result := mat.NewDense(r, 1, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			sum := e.mean_
			for j := 0; j < c; j++ {
				idx := nearestIndex(e.domains_[j], X.At(i, j))
				sum += e.outputs_[j][idx]
			}
			result.Set(i, 0, sum)
		}
	})

	return result, nil
}

// Score はモデルの決定係数（R²）を計算する
func (e *ExplainableBoostingMetaRegressor) Score(X, y mat.Matrix) (float64, error) {
	if !e.IsFitted() {
		return 0, scierrors.NewNotFittedError("ExplainableBoostingMetaRegressor", "Score")
	}

	pred, err := e.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	yVec := mat.NewVecDense(r, nil)
	predVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
		predVec.SetVec(i, pred.At(i, 0))
	}
	return metrics.R2Score(yVec, predVec)
}

// NFeatures は学習時の特徴量数を返す
func (e *ExplainableBoostingMetaRegressor) NFeatures() int {
	return e.nFeatures_
}

// Mean は学習データの目的変数の平均を返す
func (e *ExplainableBoostingMetaRegressor) Mean() (float64, error) {
	if !e.IsFitted() {
		return 0, scierrors.NewNotFittedError("ExplainableBoostingMetaRegressor", "Mean")
	}
	return e.mean_, nil
}

// Grid は特徴量jのグリッド点のコピーを返す
func (e *ExplainableBoostingMetaRegressor) Grid(feature int) ([]float64, error) {
	if !e.IsFitted() {
		return nil, scierrors.NewNotFittedError("ExplainableBoostingMetaRegressor", "Grid")
	}
	if feature < 0 || feature >= e.nFeatures_ {
		return nil, scierrors.NewValueError("ExplainableBoostingMetaRegressor.Grid", "feature index out of range")
	}
	out := make([]float64, len(e.domains_[feature]))
	copy(out, e.domains_[feature])
	return out, nil
}

// FeatureCurve は特徴量jの学習済み出力曲線のコピーを返す。
// 曲線はGridと同じ長さで、インデックスが対応する。
func (e *ExplainableBoostingMetaRegressor) FeatureCurve(feature int) ([]float64, error) {
	if !e.IsFitted() {
		return nil, scierrors.NewNotFittedError("ExplainableBoostingMetaRegressor", "FeatureCurve")
	}
	if feature < 0 || feature >= e.nFeatures_ {
		return nil, scierrors.NewValueError("ExplainableBoostingMetaRegressor.FeatureCurve", "feature index out of range")
	}
	out := make([]float64, len(e.outputs_[feature]))
	copy(out, e.outputs_[feature])
	return out, nil
}

// linspace returns n evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

func minMax(v []float64) (float64, float64) {
	lo, hi := v[0], v[0]
	for _, x := range v[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

// nearestIndex returns the index of the grid point closest to v, breaking
// ties towards the lower index. The grid is evenly spaced and sorted, so
// the candidate can be located arithmetically; the neighbor comparison
// keeps the result identical to a first-minimum linear scan.
func nearestIndex(grid []float64, v float64) int {
	m := len(grid)
	if m == 1 || v <= grid[0] {
		return 0
	}
	if v >= grid[m-1] {
		return m - 1
	}

	step := (grid[m-1] - grid[0]) / float64(m-1)
	lo := int((v - grid[0]) / step)
	if lo > m-2 {
		lo = m - 2
	}
	// Float rounding can land the candidate one cell off.
	for lo > 0 && grid[lo] > v {
		lo--
	}
	for lo < m-2 && grid[lo+1] < v {
		lo++
	}

	if v-grid[lo] <= grid[lo+1]-v {
		return lo
	}
	return lo + 1
}
