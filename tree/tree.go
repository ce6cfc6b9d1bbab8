// Package tree provides a depth-limited regression tree over a single
// feature, intended as the default base regressor for the boosting meta
// estimator in the meta package.
package tree

import (
	"sort"

	"github.com/YuminosukeSato/scibonus/core/model"
	"github.com/YuminosukeSato/scibonus/pkg/errors"
)

// DecisionTreeRegressor は1次元入力の回帰木。
// 重み付き分散が最も減少する分割点を貪欲に選び、MaxDepthまで再帰的に
// 分割する。葉の予測値はその葉に属するサンプルの重み付き平均。
type DecisionTreeRegressor struct {
	model.BaseEstimator

	// MaxDepth は木の最大深さ (デフォルト: 4)
	MaxDepth int

	// MinSamplesLeaf は葉に必要な最小サンプル数 (デフォルト: 1)
	MinSamplesLeaf int

	root *node
}

type node struct {
	// Interior nodes route x <= threshold to left, otherwise to right.
	threshold float64
	left      *node
	right     *node

	// Leaves carry the weighted mean of their samples.
	value float64
	leaf  bool
}

// NewDecisionTreeRegressor はデフォルト設定の回帰木を作成する
func NewDecisionTreeRegressor() *DecisionTreeRegressor {
	return &DecisionTreeRegressor{
		MaxDepth:       4,
		MinSamplesLeaf: 1,
	}
}

// WithMaxDepth sets the maximum depth of the tree.
func (t *DecisionTreeRegressor) WithMaxDepth(d int) *DecisionTreeRegressor {
	t.MaxDepth = d
	return t
}

// WithMinSamplesLeaf sets the minimum number of samples per leaf.
func (t *DecisionTreeRegressor) WithMinSamplesLeaf(n int) *DecisionTreeRegressor {
	t.MinSamplesLeaf = n
	return t
}

// Clone は同じハイパーパラメータを持つ未学習のコピーを返す
func (t *DecisionTreeRegressor) Clone() model.UnivariateRegressor {
	return &DecisionTreeRegressor{
		MaxDepth:       t.MaxDepth,
		MinSamplesLeaf: t.MinSamplesLeaf,
	}
}

// Fit は1次元データで回帰木を学習させる。
// sampleWeightがnilの場合は全サンプル重み1として扱う。
func (t *DecisionTreeRegressor) Fit(x, y, sampleWeight []float64) error {
	n := len(x)
	if n == 0 {
		return errors.NewModelError("DecisionTreeRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(y) != n {
		return errors.NewDimensionError("DecisionTreeRegressor.Fit", n, len(y), 0)
	}
	if sampleWeight != nil && len(sampleWeight) != n {
		return errors.NewDimensionError("DecisionTreeRegressor.Fit", n, len(sampleWeight), 0)
	}
	if t.MaxDepth < 0 {
		return errors.NewValidationError("MaxDepth", "must be non-negative", t.MaxDepth)
	}
	if t.MinSamplesLeaf < 1 {
		return errors.NewValidationError("MinSamplesLeaf", "must be at least 1", t.MinSamplesLeaf)
	}

	// Sort once; every recursive split works on a contiguous range.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	xs := make([]float64, n)
	ys := make([]float64, n)
	ws := make([]float64, n)
	for i, j := range idx {
		xs[i] = x[j]
		ys[i] = y[j]
		if sampleWeight != nil {
			ws[i] = sampleWeight[j]
		} else {
			ws[i] = 1
		}
	}

	t.root = t.build(xs, ys, ws, 0)
	t.SetFitted()
	return nil
}

// build grows a subtree over the sorted range xs/ys/ws.
func (t *DecisionTreeRegressor) build(xs, ys, ws []float64, depth int) *node {
	mean := weightedMean(ys, ws)
	if depth >= t.MaxDepth || len(xs) < 2*t.MinSamplesLeaf || xs[0] == xs[len(xs)-1] {
		return &node{value: mean, leaf: true}
	}

	split, ok := bestSplit(xs, ys, ws, t.MinSamplesLeaf)
	if !ok {
		return &node{value: mean, leaf: true}
	}

	return &node{
		threshold: (xs[split-1] + xs[split]) / 2,
		left:      t.build(xs[:split], ys[:split], ws[:split], depth+1),
		right:     t.build(xs[split:], ys[split:], ws[split:], depth+1),
	}
}

// bestSplit returns the index that minimizes the summed weighted SSE of the
// two halves. Splits are only allowed between distinct x values.
func bestSplit(xs, ys, ws []float64, minLeaf int) (int, bool) {
	n := len(xs)

	var totW, totWY, totWY2 float64
	for i := 0; i < n; i++ {
		totW += ws[i]
		totWY += ws[i] * ys[i]
		totWY2 += ws[i] * ys[i] * ys[i]
	}

	best := -1
	bestScore := sse(totW, totWY, totWY2)

	var leftW, leftWY, leftWY2 float64
	for i := 1; i < n; i++ {
		leftW += ws[i-1]
		leftWY += ws[i-1] * ys[i-1]
		leftWY2 += ws[i-1] * ys[i-1] * ys[i-1]

		if i < minLeaf || n-i < minLeaf {
			continue
		}
		if xs[i-1] == xs[i] {
			continue
		}

		score := sse(leftW, leftWY, leftWY2) + sse(totW-leftW, totWY-leftWY, totWY2-leftWY2)
		if score < bestScore {
			bestScore = score
			best = i
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}

// sse computes Σw(y-ȳ)² from the weighted moments of a range.
func sse(w, wy, wy2 float64) float64 {
	if w <= 0 {
		return 0
	}
	return wy2 - wy*wy/w
}

func weightedMean(ys, ws []float64) float64 {
	var sumW, sumWY float64
	for i := range ys {
		sumW += ws[i]
		sumWY += ws[i] * ys[i]
	}
	if sumW == 0 {
		// Degenerate all-zero weights: fall back to the plain mean.
		for _, v := range ys {
			sumWY += v
		}
		return sumWY / float64(len(ys))
	}
	return sumWY / sumW
}

// Predict は各入力点に対する葉の予測値を返す
func (t *DecisionTreeRegressor) Predict(x []float64) ([]float64, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("DecisionTreeRegressor", "Predict")
	}

	out := make([]float64, len(x))
	for i, v := range x {
		nd := t.root
		for !nd.leaf {
			if v <= nd.threshold {
				nd = nd.left
			} else {
				nd = nd.right
			}
		}
		out[i] = nd.value
	}
	return out, nil
}
