package timeseries

import (
	"time"

	"github.com/YuminosukeSato/scibonus/core/model"
	"github.com/YuminosukeSato/scibonus/pkg/errors"
	"github.com/YuminosukeSato/scibonus/pkg/log"
)

// TimeFeatures は時刻インデックスから導出できるカレンダー特徴量を
// 列として追加する変換器。有効にしたフラグごとに1列が固定の順序
// (second, minute, hour, day_of_week, day_of_month, day_of_year,
// week_of_month, week_of_year, month, year) で追加される。
//
// day_of_weekはISO表記（月曜=1 .. 日曜=7）、week_of_yearはISO週番号、
// week_of_monthはceil(day_of_month / 7)。
type TimeFeatures struct {
	model.BaseEstimator

	Second      bool
	Minute      bool
	Hour        bool
	DayOfWeek   bool
	DayOfMonth  bool
	DayOfYear   bool
	WeekOfMonth bool
	WeekOfYear  bool
	Month       bool
	Year        bool
}

// NewTimeFeatures は全フラグ無効の変換器を作成する
func NewTimeFeatures() *TimeFeatures {
	return &TimeFeatures{}
}

// Fit は学習を行う。この変換器に学習すべきパラメータはない。
func (t *TimeFeatures) Fit(_ *Frame) error {
	t.SetFitted()
	return nil
}

// Transform は有効にしたカレンダー特徴量を列として追加した
// 新しいFrameを返す
func (t *TimeFeatures) Transform(X *Frame) (*Frame, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("TimeFeatures", "Transform")
	}

	type feature struct {
		enabled bool
		name    string
		fn      func(time.Time) float64
	}
	features := []feature{
		{t.Second, "second", func(ts time.Time) float64 { return float64(ts.Second()) }},
		{t.Minute, "minute", func(ts time.Time) float64 { return float64(ts.Minute()) }},
		{t.Hour, "hour", func(ts time.Time) float64 { return float64(ts.Hour()) }},
		{t.DayOfWeek, "day_of_week", func(ts time.Time) float64 { return float64(isoWeekday(ts)) }},
		{t.DayOfMonth, "day_of_month", func(ts time.Time) float64 { return float64(ts.Day()) }},
		{t.DayOfYear, "day_of_year", func(ts time.Time) float64 { return float64(ts.YearDay()) }},
		{t.WeekOfMonth, "week_of_month", func(ts time.Time) float64 { return float64((ts.Day() + 6) / 7) }},
		{t.WeekOfYear, "week_of_year", func(ts time.Time) float64 {
			_, week := ts.ISOWeek()
			return float64(week)
		}},
		{t.Month, "month", func(ts time.Time) float64 { return float64(ts.Month()) }},
		{t.Year, "year", func(ts time.Time) float64 { return float64(ts.Year()) }},
	}

	index := X.Index()
	out := X
	var added []string
	for _, f := range features {
		if !f.enabled {
			continue
		}
		values := make([]float64, len(index))
		for i, ts := range index {
			values[i] = f.fn(ts)
		}
		next, err := out.WithColumn(f.name, values)
		if err != nil {
			return nil, err
		}
		out = next
		added = append(added, f.name)
	}

	log.GetLoggerWithName("timeseries.features").Debug("calendar features added",
		log.OperationKey, "transform",
		log.SamplesKey, len(index),
		log.ColumnsKey, added,
	)
	return out, nil
}

// FitTransform はFitとTransformを同時に実行する
func (t *TimeFeatures) FitTransform(X *Frame) (*Frame, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}

// isoWeekday returns Monday=1 .. Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
