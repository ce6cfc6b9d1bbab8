package timeseries

import (
	"time"

	"github.com/YuminosukeSato/scibonus/core/model"
	"github.com/YuminosukeSato/scibonus/pkg/errors"
)

// DateIndicator は特別な日付を示す0/1の列を追加する変換器。
// 祝日やセールなどのイベント日を明示的に列挙して使う。たとえば
// 2018〜2020年のクリスマスは3つの日付として指定する。
//
// 生成された指示列はGeneralGaussianSmootherで前後に滲ませると
// イベントの前後効果の特徴量になる。
type DateIndicator struct {
	model.BaseEstimator

	// Name は追加される列の名前（例: "christmas", "black_friday_2018"）
	Name string

	// Dates は指示対象の日付のリスト
	Dates []time.Time
}

// NewDateIndicator は指定した名前と日付リストの変換器を作成する
func NewDateIndicator(name string, dates []time.Time) *DateIndicator {
	return &DateIndicator{Name: name, Dates: dates}
}

// Fit は設定を検証する
func (d *DateIndicator) Fit(_ *Frame) error {
	if d.Name == "" {
		return errors.NewValidationError("name", "must not be empty", d.Name)
	}
	d.SetFitted()
	return nil
}

// Transform はインデックスがDatesに含まれる行で1、それ以外で0の列を
// 追加した新しいFrameを返す
func (d *DateIndicator) Transform(X *Frame) (*Frame, error) {
	if !d.IsFitted() {
		return nil, errors.NewNotFittedError("DateIndicator", "Transform")
	}

	dates := make(map[int64]struct{}, len(d.Dates))
	for _, t := range d.Dates {
		dates[t.UnixNano()] = struct{}{}
	}

	index := X.Index()
	values := make([]float64, len(index))
	for i, t := range index {
		if _, ok := dates[t.UnixNano()]; ok {
			values[i] = 1
		}
	}
	return X.WithColumn(d.Name, values)
}

// FitTransform はFitとTransformを同時に実行する
func (d *DateIndicator) FitTransform(X *Frame) (*Frame, error) {
	if err := d.Fit(X); err != nil {
		return nil, err
	}
	return d.Transform(X)
}
