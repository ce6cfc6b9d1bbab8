// Package timeseries provides feature engineering transforms over a
// time-indexed table: calendar features, cyclical encoding, date
// indicators, power trends and kernel smoothing of event indicators.
package timeseries

import (
	"time"

	"github.com/YuminosukeSato/scibonus/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Frame は時刻インデックス付きの数値テーブル。
// pandasのDatetimeIndex付きDataFrameに相当する最小限の型で、
// 各変換はFrameを受け取り列を追加した新しいFrameを返す（入力は不変）。
type Frame struct {
	index   []time.Time
	columns []string
	data    *mat.Dense
}

// NewFrame は時刻インデックス・列名・データからFrameを作成する。
// dataはlen(index)×len(columns)でなければならない。列なしのFrameは
// dataをnilにして作れる。
func NewFrame(index []time.Time, columns []string, data *mat.Dense) (*Frame, error) {
	if len(index) == 0 {
		return nil, errors.NewModelError("NewFrame", "empty index", errors.ErrEmptyData)
	}
	if len(columns) == 0 {
		if data != nil {
			return nil, errors.NewValueError("NewFrame", "data must be nil when no columns are given")
		}
		return &Frame{index: append([]time.Time(nil), index...)}, nil
	}
	if data == nil {
		return nil, errors.NewValueError("NewFrame", "data must not be nil when columns are given")
	}
	r, c := data.Dims()
	if r != len(index) {
		return nil, errors.NewDimensionError("NewFrame", len(index), r, 0)
	}
	if c != len(columns) {
		return nil, errors.NewDimensionError("NewFrame", len(columns), c, 1)
	}
	seen := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		if _, dup := seen[name]; dup {
			return nil, errors.NewValueError("NewFrame", "duplicate column name: "+name)
		}
		seen[name] = struct{}{}
	}

	out := &Frame{
		index:   append([]time.Time(nil), index...),
		columns: append([]string(nil), columns...),
		data:    mat.DenseCopyOf(data),
	}
	return out, nil
}

// Rows は行数を返す
func (f *Frame) Rows() int {
	return len(f.index)
}

// NumColumns は列数を返す
func (f *Frame) NumColumns() int {
	return len(f.columns)
}

// Index は時刻インデックスのコピーを返す
func (f *Frame) Index() []time.Time {
	return append([]time.Time(nil), f.index...)
}

// Columns は列名のコピーを返す
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// HasColumn は指定した名前の列が存在するかどうかを返す
func (f *Frame) HasColumn(name string) bool {
	return f.columnIndex(name) >= 0
}

func (f *Frame) columnIndex(name string) int {
	for j, col := range f.columns {
		if col == name {
			return j
		}
	}
	return -1
}

// Column は指定した列の値のコピーを返す
func (f *Frame) Column(name string) ([]float64, error) {
	j := f.columnIndex(name)
	if j < 0 {
		return nil, errors.NewValueError("Frame.Column", "unknown column: "+name)
	}
	out := make([]float64, len(f.index))
	for i := range out {
		out[i] = f.data.At(i, j)
	}
	return out, nil
}

// At は(i, j)の値を返す
func (f *Frame) At(i, j int) float64 {
	return f.data.At(i, j)
}

// Matrix はデータ部分のコピーをmat.Matrixとして返す。
// 列なしのFrameではnilを返す。
func (f *Frame) Matrix() mat.Matrix {
	if f.data == nil {
		return nil
	}
	return mat.DenseCopyOf(f.data)
}

// WithColumn は列を追加した新しいFrameを返す。同名の列が既に存在する
// 場合は値を置き換える（pandasのassignと同じ挙動）。
func (f *Frame) WithColumn(name string, values []float64) (*Frame, error) {
	if len(values) != len(f.index) {
		return nil, errors.NewDimensionError("Frame.WithColumn", len(f.index), len(values), 0)
	}

	r := len(f.index)
	if j := f.columnIndex(name); j >= 0 {
		out := f.clone()
		for i := 0; i < r; i++ {
			out.data.Set(i, j, values[i])
		}
		return out, nil
	}

	c := len(f.columns)
	data := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data.Set(i, j, f.data.At(i, j))
		}
		data.Set(i, c, values[i])
	}
	return &Frame{
		index:   append([]time.Time(nil), f.index...),
		columns: append(append([]string(nil), f.columns...), name),
		data:    data,
	}, nil
}

func (f *Frame) clone() *Frame {
	out := &Frame{
		index:   append([]time.Time(nil), f.index...),
		columns: append([]string(nil), f.columns...),
	}
	if f.data != nil {
		out.data = mat.DenseCopyOf(f.data)
	}
	return out
}

// FrameTransformer はFrameに対する変換のインターフェース
type FrameTransformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X *Frame) error

	// Transform はFrameを変換して新しいFrameを返す
	Transform(X *Frame) (*Frame, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X *Frame) (*Frame, error)
}

// inferFrequency returns the spacing of a strictly uniform, increasing
// index. Transforms that need a continuous time grid use this when no
// explicit frequency is configured.
func inferFrequency(index []time.Time) (time.Duration, error) {
	if len(index) < 2 {
		return 0, errors.WithStack(errors.ErrNoFrequency)
	}
	freq := index[1].Sub(index[0])
	if freq <= 0 {
		return 0, errors.WithStack(errors.ErrNoFrequency)
	}
	for i := 2; i < len(index); i++ {
		if index[i].Sub(index[i-1]) != freq {
			return 0, errors.WithStack(errors.ErrNoFrequency)
		}
	}
	return freq, nil
}

// gridPosition maps a timestamp onto the continuous grid anchored at
// origin with the given spacing. The timestamp must lie exactly on the
// grid.
func gridPosition(t, origin time.Time, freq time.Duration) (int, error) {
	d := t.Sub(origin)
	if d%freq != 0 {
		return 0, errors.NewValueError("gridPosition", "index is not aligned to the frequency")
	}
	return int(d / freq), nil
}
