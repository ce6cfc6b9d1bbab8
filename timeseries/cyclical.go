package timeseries

import (
	"math"

	"github.com/YuminosukeSato/scibonus/core/model"
	"github.com/YuminosukeSato/scibonus/pkg/errors"
)

// Cycle は周期特徴量の値域を表す
type Cycle struct {
	Min float64
	Max float64
}

// defaultCycles covers the columns produced by TimeFeatures.
var defaultCycles = map[string]Cycle{
	"second":        {Min: 0, Max: 59},
	"minute":        {Min: 0, Max: 59},
	"hour":          {Min: 0, Max: 23},
	"day_of_week":   {Min: 1, Max: 7},
	"day_of_month":  {Min: 1, Max: 31},
	"day_of_year":   {Min: 1, Max: 366},
	"week_of_month": {Min: 1, Max: 5},
	"week_of_year":  {Min: 1, Max: 53},
	"month":         {Min: 1, Max: 12},
}

// CyclicalEncoder は周期的な特徴量を円周上の2特徴量に分解する変換器。
// 周期が登録された名前の各列について
//
//	<col>_cos = cos(2π·(v - min) / (max + 1 - min))
//	<col>_sin = sin(2π·(v - min) / (max + 1 - min))
//
// の2列を追加する。生の値では23時と0時が遠く扱われるが、この表現では
// 時間的に近い点が近いままになる。
//
// TimeFeaturesが生成する列名はすべて登録済み。それ以外の周期は
// AdditionalCyclesで登録できる（既定の周期が同名の登録より優先される）。
type CyclicalEncoder struct {
	model.BaseEstimator

	AdditionalCycles map[string]Cycle

	cycles map[string]Cycle
}

// NewCyclicalEncoder は既定の周期のみを持つ変換器を作成する
func NewCyclicalEncoder() *CyclicalEncoder {
	return &CyclicalEncoder{}
}

// WithAdditionalCycles registers extra cycles by column name.
func (c *CyclicalEncoder) WithAdditionalCycles(cycles map[string]Cycle) *CyclicalEncoder {
	c.AdditionalCycles = cycles
	return c
}

// Fit は周期テーブルを確定させる
func (c *CyclicalEncoder) Fit(_ *Frame) error {
	c.cycles = make(map[string]Cycle, len(defaultCycles)+len(c.AdditionalCycles))
	for name, cy := range c.AdditionalCycles {
		if cy.Max+1-cy.Min == 0 {
			return errors.NewValidationError("additional_cycles", "cycle length must be non-zero for column "+name, cy)
		}
		c.cycles[name] = cy
	}
	for name, cy := range defaultCycles {
		c.cycles[name] = cy
	}
	c.SetFitted()
	return nil
}

// Transform は周期が登録された各列についてcos列とsin列を追加した
// 新しいFrameを返す。cos列が全て先、sin列が全て後に並ぶ。
func (c *CyclicalEncoder) Transform(X *Frame) (*Frame, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("CyclicalEncoder", "Transform")
	}

	var matched []string
	for _, name := range X.Columns() {
		if _, ok := c.cycles[name]; ok {
			matched = append(matched, name)
		}
	}

	out := X
	for _, pass := range []struct {
		suffix string
		fn     func(float64) float64
	}{
		{"_cos", math.Cos},
		{"_sin", math.Sin},
	} {
		for _, name := range matched {
			cy := c.cycles[name]
			values, err := X.Column(name)
			if err != nil {
				return nil, err
			}
			encoded := make([]float64, len(values))
			for i, v := range values {
				phase := (v - cy.Min) / (cy.Max + 1 - cy.Min) * 2 * math.Pi
				encoded[i] = pass.fn(phase)
			}
			next, err := out.WithColumn(name+pass.suffix, encoded)
			if err != nil {
				return nil, err
			}
			out = next
		}
	}
	return out, nil
}

// FitTransform はFitとTransformを同時に実行する
func (c *CyclicalEncoder) FitTransform(X *Frame) (*Frame, error) {
	if err := c.Fit(X); err != nil {
		return nil, err
	}
	return c.Transform(X)
}
