package timeseries

import (
	"math"
	"time"

	"github.com/YuminosukeSato/scibonus/core/model"
	"github.com/YuminosukeSato/scibonus/pkg/errors"
)

// PowerTrend はべき乗トレンド列を追加する変換器。
// 起点からの経過ステップ数tに対してt^Powerを"trend"列として追加する。
// Power=1で線形、Power=0.5で平方根、Power=2で二次のトレンドになる。
type PowerTrend struct {
	model.BaseEstimator

	// Power はトレンドの指数 (デフォルト: 1)
	Power float64

	// Frequency はインデックスの周期。ゼロ値の場合はFit時に一様な
	// インデックスから推定され、推定できなければエラーになる。
	Frequency time.Duration

	// Origin はトレンドの起点（trend=0となる時刻）。ゼロ値の場合は
	// Fit時にインデックスの最小値が使われる。
	Origin time.Time

	freq_   time.Duration
	origin_ time.Time
}

// NewPowerTrend は線形トレンド・周期と起点は推定、の変換器を作成する
func NewPowerTrend() *PowerTrend {
	return &PowerTrend{Power: 1}
}

// WithPower sets the trend exponent.
func (p *PowerTrend) WithPower(power float64) *PowerTrend {
	p.Power = power
	return p
}

// WithFrequency sets the index spacing explicitly.
func (p *PowerTrend) WithFrequency(freq time.Duration) *PowerTrend {
	p.Frequency = freq
	return p
}

// WithOrigin sets the point the trend originates from.
func (p *PowerTrend) WithOrigin(origin time.Time) *PowerTrend {
	p.Origin = origin
	return p
}

// Fit は周期と起点を確定させる。
// 周期が指定されておらずインデックスからも推定できない場合はエラー。
func (p *PowerTrend) Fit(X *Frame) error {
	freq := p.Frequency
	if freq == 0 {
		inferred, err := inferFrequency(X.Index())
		if err != nil {
			return errors.Wrap(err, "PowerTrend.Fit")
		}
		freq = inferred
	} else if freq < 0 {
		return errors.NewValidationError("frequency", "must be positive", p.Frequency)
	}
	p.freq_ = freq

	if p.Origin.IsZero() {
		p.origin_ = minTime(X.Index())
	} else {
		p.origin_ = p.Origin
	}

	p.SetFitted()
	return nil
}

// FittedFrequency は確定した周期を返す（Fit後のみ有効）
func (p *PowerTrend) FittedFrequency() time.Duration {
	return p.freq_
}

// FittedOrigin は確定した起点を返す（Fit後のみ有効）
func (p *PowerTrend) FittedOrigin() time.Time {
	return p.origin_
}

// Transform は"trend"列を追加した新しいFrameを返す
func (p *PowerTrend) Transform(X *Frame) (*Frame, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PowerTrend", "Transform")
	}

	index := X.Index()
	values := make([]float64, len(index))
	for i, t := range index {
		steps := float64(t.Sub(p.origin_)) / float64(p.freq_)
		values[i] = math.Pow(steps, p.Power)
	}
	return X.WithColumn("trend", values)
}

// FitTransform はFitとTransformを同時に実行する
func (p *PowerTrend) FitTransform(X *Frame) (*Frame, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

func minTime(index []time.Time) time.Time {
	min := index[0]
	for _, t := range index[1:] {
		if t.Before(min) {
			min = t
		}
	}
	return min
}
