// Package isotonic provides weighted isotonic regression over a single
// feature. Combined with the meta package it produces additive models that
// are monotone in chosen features.
package isotonic

import (
	"sort"

	"github.com/YuminosukeSato/scibonus/core/model"
	"github.com/YuminosukeSato/scibonus/pkg/errors"
)

// IsotonicRegression は単調回帰モデル。
// pool-adjacent-violatorsアルゴリズムで重み付き最小二乗の意味で最適な
// 単調non-decreasing（Increasing=falseならnon-increasing）な階段関数を
// 求め、予測時は節点間を線形補間する。
type IsotonicRegression struct {
	model.BaseEstimator

	// Increasing は単調増加制約を課すかどうか (デフォルト: true)
	Increasing bool

	// Fitted knots, strictly increasing in x.
	knotX []float64
	knotY []float64
}

// NewIsotonicRegression は単調増加制約のモデルを作成する
func NewIsotonicRegression() *IsotonicRegression {
	return &IsotonicRegression{Increasing: true}
}

// WithIncreasing sets the direction of the monotonicity constraint.
func (ir *IsotonicRegression) WithIncreasing(increasing bool) *IsotonicRegression {
	ir.Increasing = increasing
	return ir
}

// Clone は同じ制約を持つ未学習のコピーを返す
func (ir *IsotonicRegression) Clone() model.UnivariateRegressor {
	return &IsotonicRegression{Increasing: ir.Increasing}
}

// Fit は1次元データで単調回帰を学習させる。
// sampleWeightがnilの場合は全サンプル重み1として扱う。
func (ir *IsotonicRegression) Fit(x, y, sampleWeight []float64) error {
	n := len(x)
	if n == 0 {
		return errors.NewModelError("IsotonicRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(y) != n {
		return errors.NewDimensionError("IsotonicRegression.Fit", n, len(y), 0)
	}
	if sampleWeight != nil && len(sampleWeight) != n {
		return errors.NewDimensionError("IsotonicRegression.Fit", n, len(sampleWeight), 0)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	// Collapse duplicate x values into their weighted mean before pooling.
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	ws := make([]float64, 0, n)
	for i := 0; i < n; {
		j := i
		var sumW, sumWY float64
		for ; j < n && x[idx[j]] == x[idx[i]]; j++ {
			w := 1.0
			if sampleWeight != nil {
				w = sampleWeight[idx[j]]
			}
			sumW += w
			sumWY += w * y[idx[j]]
		}
		mean := 0.0
		if sumW > 0 {
			mean = sumWY / sumW
		}
		xs = append(xs, x[idx[i]])
		ys = append(ys, mean)
		ws = append(ws, sumW)
		i = j
	}

	if !ir.Increasing {
		for i := range ys {
			ys[i] = -ys[i]
		}
	}

	fitted := pava(ys, ws)

	if !ir.Increasing {
		for i := range fitted {
			fitted[i] = -fitted[i]
		}
	}

	ir.knotX = xs
	ir.knotY = fitted
	ir.SetFitted()
	return nil
}

// pava runs the pool-adjacent-violators algorithm for a non-decreasing fit
// and returns one fitted value per input point.
func pava(y, w []float64) []float64 {
	n := len(y)

	// Blocks of pooled points, each carrying its weighted mean.
	mean := make([]float64, 0, n)
	weight := make([]float64, 0, n)
	size := make([]int, 0, n)

	for i := 0; i < n; i++ {
		mean = append(mean, y[i])
		weight = append(weight, w[i])
		size = append(size, 1)

		// Merge backwards while the monotonicity constraint is violated.
		for len(mean) > 1 && mean[len(mean)-2] > mean[len(mean)-1] {
			m := len(mean)
			wSum := weight[m-2] + weight[m-1]
			if wSum > 0 {
				mean[m-2] = (weight[m-2]*mean[m-2] + weight[m-1]*mean[m-1]) / wSum
			} else {
				mean[m-2] = (mean[m-2] + mean[m-1]) / 2
			}
			weight[m-2] = wSum
			size[m-2] += size[m-1]
			mean = mean[:m-1]
			weight = weight[:m-1]
			size = size[:m-1]
		}
	}

	out := make([]float64, 0, n)
	for b := range mean {
		for k := 0; k < size[b]; k++ {
			out = append(out, mean[b])
		}
	}
	return out
}

// Predict は節点間の線形補間で予測値を返す。
// 学習範囲の外側は最端の節点値でクリップされる。
func (ir *IsotonicRegression) Predict(x []float64) ([]float64, error) {
	if !ir.IsFitted() {
		return nil, errors.NewNotFittedError("IsotonicRegression", "Predict")
	}

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = ir.interpolate(v)
	}
	return out, nil
}

func (ir *IsotonicRegression) interpolate(v float64) float64 {
	m := len(ir.knotX)
	if v <= ir.knotX[0] {
		return ir.knotY[0]
	}
	if v >= ir.knotX[m-1] {
		return ir.knotY[m-1]
	}

	// First knot strictly greater than v.
	hi := sort.SearchFloat64s(ir.knotX, v)
	if ir.knotX[hi] == v {
		return ir.knotY[hi]
	}
	lo := hi - 1

	frac := (v - ir.knotX[lo]) / (ir.knotX[hi] - ir.knotX[lo])
	return ir.knotY[lo] + frac*(ir.knotY[hi]-ir.knotY[lo])
}
