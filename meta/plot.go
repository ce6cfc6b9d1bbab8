package meta

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// CurvePlot は特徴量jの学習済み曲線をプロットとして返す。
// 曲線はグリッド解像度の階段関数近似なので、プロットがそのまま
// モデルの説明になる。
func (e *ExplainableBoostingMetaRegressor) CurvePlot(feature int) (*plot.Plot, error) {
	grid, err := e.Grid(feature)
	if err != nil {
		return nil, err
	}
	curve, err := e.FeatureCurve(feature)
	if err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, len(grid))
	for i := range grid {
		pts[i].X = grid[i]
		pts[i].Y = curve[i]
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Feature %d contribution", feature)
	p.X.Label.Text = fmt.Sprintf("x_%d", feature)
	p.Y.Label.Text = fmt.Sprintf("g_%d(x_%d)", feature, feature)

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	p.Add(plotter.NewGrid(), line)

	return p, nil
}

// SaveCurvePlot は特徴量jの学習済み曲線を画像ファイルに保存する。
// 形式はpathの拡張子（.png, .svg, .pdfなど）で決まる。
func (e *ExplainableBoostingMetaRegressor) SaveCurvePlot(feature int, path string) error {
	p, err := e.CurvePlot(feature)
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
