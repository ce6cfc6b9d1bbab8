package timeseries

import (
	"math"
	"time"

	"github.com/YuminosukeSato/scibonus/core/model"
	"github.com/YuminosukeSato/scibonus/pkg/errors"
	"github.com/YuminosukeSato/scibonus/pkg/log"
)

// Tails はカーネルのどちら側を使うかを表す
type Tails string

const (
	// TailsBoth は両側のカーネルを使う（イベント前後に効果が広がる）
	TailsBoth Tails = "both"
	// TailsLeft は左側のみを使う（イベント前にのみ効果が広がる）
	TailsLeft Tails = "left"
	// TailsRight は右側のみを使う（イベント後にのみ効果が広がる）
	TailsRight Tails = "right"
)

// GeneralGaussianSmoother は一般化ガウス曲線との畳み込みで各列を
// 平滑化する変換器。DateIndicatorの作るスパイク状の指示列を
// 滲ませて、イベントの前後効果を表現するのが主な用途。
//
// カーネルは exp(-0.5·|k/Sig|^(2P))。P=1で通常のガウス曲線、
// P=0.5でラプラス曲線になる。平滑化はインデックスの抜けを0で
// 埋めた連続な時間グリッド上で行われ、結果は元のインデックスに
// 戻して返される。
type GeneralGaussianSmoother struct {
	model.BaseEstimator

	// Frequency はインデックスの周期。ゼロ値の場合はFit時に一様な
	// インデックスから推定され、推定できなければエラーになる。
	Frequency time.Duration

	// Window はスライディングウィンドウの幅 (デフォルト: 1)。
	// 効果はおよそ date - Window/2·Frequency から
	// date + Window/2·Frequency まで届く。
	Window int

	// P はカーネルの形状パラメータ (デフォルト: 1)
	P float64

	// Sig はカーネルの標準偏差パラメータ (デフォルト: 1)
	Sig float64

	// TailsMode は使用するカーネルの側 (デフォルト: TailsBoth)
	TailsMode Tails

	freq_ time.Duration

	// kernel_[i] corresponds to grid offset offsets_[i]; normalized to
	// sum 1 after tail truncation.
	kernel_  []float64
	offsets_ []int
}

// NewGeneralGaussianSmoother はデフォルト設定の平滑化変換器を作成する
func NewGeneralGaussianSmoother() *GeneralGaussianSmoother {
	return &GeneralGaussianSmoother{
		Window:    1,
		P:         1,
		Sig:       1,
		TailsMode: TailsBoth,
	}
}

// WithFrequency sets the index spacing explicitly.
func (g *GeneralGaussianSmoother) WithFrequency(freq time.Duration) *GeneralGaussianSmoother {
	g.Frequency = freq
	return g
}

// WithWindow sets the sliding window size.
func (g *GeneralGaussianSmoother) WithWindow(window int) *GeneralGaussianSmoother {
	g.Window = window
	return g
}

// WithShape sets the curve shape parameters p and sig.
func (g *GeneralGaussianSmoother) WithShape(p, sig float64) *GeneralGaussianSmoother {
	g.P = p
	g.Sig = sig
	return g
}

// WithTails sets which side of the kernel to use.
func (g *GeneralGaussianSmoother) WithTails(tails Tails) *GeneralGaussianSmoother {
	g.TailsMode = tails
	return g
}

// Fit は周期を確定させ、スライディングウィンドウを構築する
func (g *GeneralGaussianSmoother) Fit(X *Frame) error {
	if g.Window < 1 {
		return errors.NewValidationError("window", "must be at least 1", g.Window)
	}
	if g.Sig <= 0 {
		return errors.NewValidationError("sig", "must be positive", g.Sig)
	}

	freq := g.Frequency
	if freq == 0 {
		inferred, err := inferFrequency(X.Index())
		if err != nil {
			return errors.Wrap(err, "GeneralGaussianSmoother.Fit")
		}
		freq = inferred
	} else if freq < 0 {
		return errors.NewValidationError("frequency", "must be positive", g.Frequency)
	}
	g.freq_ = freq

	if err := g.setSlidingWindow(); err != nil {
		return err
	}

	log.GetLoggerWithName("timeseries.smoother").Debug("sliding window built",
		log.OperationKey, "fit",
		"window", g.Window,
		"tails", string(g.TailsMode),
	)
	g.SetFitted()
	return nil
}

// setSlidingWindow builds the kernel over grid offsets
// 1-(Window+1)/2 .. Window/2, truncates one tail if requested and
// normalizes the remainder to sum 1.
func (g *GeneralGaussianSmoother) setSlidingWindow() error {
	w := g.Window
	offsets := make([]int, w)
	kernel := make([]float64, w)
	start := 1 - (w+1)/2
	for i := 0; i < w; i++ {
		k := start + i
		offsets[i] = k
		kernel[i] = math.Exp(-0.5 * math.Pow(math.Abs(float64(k)/g.Sig), 2*g.P))
	}

	switch g.TailsMode {
	case TailsBoth:
	case TailsLeft:
		for i := w/2 + 1; i < w; i++ {
			kernel[i] = 0
		}
	case TailsRight:
		for i := 0; i < w/2; i++ {
			kernel[i] = 0
		}
	default:
		return errors.NewValidationError("tails", "has to be one of 'both', 'left' or 'right'", string(g.TailsMode))
	}

	var sum float64
	for _, v := range kernel {
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	g.offsets_ = offsets
	g.kernel_ = kernel
	return nil
}

// Transform は全列を平滑化した新しいFrameを返す。
// インデックスは確定した周期のグリッド上になければならない。
func (g *GeneralGaussianSmoother) Transform(X *Frame) (*Frame, error) {
	if !g.IsFitted() {
		return nil, errors.NewNotFittedError("GeneralGaussianSmoother", "Transform")
	}

	index := X.Index()
	origin := minTime(index)

	// Map every row onto the continuous grid; gaps count as zero.
	positions := make([]int, len(index))
	gridLen := 1
	for i, t := range index {
		pos, err := gridPosition(t, origin, g.freq_)
		if err != nil {
			return nil, errors.Wrap(err, "GeneralGaussianSmoother.Transform")
		}
		positions[i] = pos
		if pos+1 > gridLen {
			gridLen = pos + 1
		}
	}

	out := X
	for _, name := range X.Columns() {
		values, err := X.Column(name)
		if err != nil {
			return nil, err
		}

		extended := make([]float64, gridLen)
		for i, pos := range positions {
			extended[pos] = values[i]
		}

		smoothed := make([]float64, gridLen)
		for i, v := range extended {
			if v == 0 {
				continue
			}
			for j, k := range g.offsets_ {
				target := i + k
				if target < 0 || target >= gridLen {
					continue
				}
				smoothed[target] += v * g.kernel_[j]
			}
		}

		column := make([]float64, len(index))
		for i, pos := range positions {
			column[i] = smoothed[pos]
		}
		next, err := out.WithColumn(name, column)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// FitTransform はFitとTransformを同時に実行する
func (g *GeneralGaussianSmoother) FitTransform(X *Frame) (*Frame, error) {
	if err := g.Fit(X); err != nil {
		return nil, err
	}
	return g.Transform(X)
}
