package debug

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// 默认图片尺寸
var (
	DefaultPlotWidth  = 16 * vg.Centimeter
	DefaultPlotHeight = 10 * vg.Centimeter
)

// Plot 静态图片绘制，阴影部分为积分区域
type Plot struct {
	*Record
	Width, Height vg.Length // 为 0 时使用默认尺寸
	Format        string    // Render 的输出格式，默认 png
}

// Build 生成最近一次积分的图
func (c *Plot) Build() (*plot.Plot, error) {
	iv, ok := c.Last()
	if !ok {
		return nil, ErrNoData
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("integral of P/Q on [%g, %g] = %.10g", iv.A, iv.B, iv.Value)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	// 积分区域
	ring := make(plotter.XYs, 0, len(iv.X)+2)
	ring = append(ring, plotter.XY{X: iv.X[0], Y: 0})
	for i := range iv.X {
		ring = append(ring, plotter.XY{X: iv.X[i], Y: iv.Y[i]})
	}
	ring = append(ring, plotter.XY{X: iv.X[len(iv.X)-1], Y: 0})
	area, err := plotter.NewPolygon(ring)
	if err != nil {
		return nil, err
	}
	area.Color = color.RGBA{R: 25, G: 135, B: 199, A: 60}
	area.LineStyle.Width = 0
	p.Add(area)

	// 被积函数与各项
	lines := []any{"P/Q", xys(iv.X, iv.Y)}
	labels := c.Labels()
	for j, part := range iv.Parts {
		lines = append(lines, labels[j], xys(iv.X, part))
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, err
	}
	p.Legend.Top = true
	return p, nil
}

// Save 按扩展名保存图片（png、svg、pdf 等）
func (c *Plot) Save(path string) error {
	p, err := c.Build()
	if err != nil {
		return err
	}
	w, h := c.size()
	return p.Save(w, h, path)
}

// Render 按 Format 输出图片
func (c *Plot) Render(out io.Writer) error {
	p, err := c.Build()
	if err != nil {
		return err
	}
	format := strings.ToLower(c.Format)
	if format == "" {
		format = "png"
	}
	w, h := c.size()
	wt, err := p.WriterTo(w, h, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(out)
	return err
}

func (c *Plot) size() (vg.Length, vg.Length) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = DefaultPlotWidth
	}
	if h <= 0 {
		h = DefaultPlotHeight
	}
	return w, h
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], y[i]
	}
	return pts
}
