package debug

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/sirupsen/logrus"
)

// ErrNoData 没有可绘制的积分记录
var ErrNoData = errors.New("debug: no successful integration recorded")

// Charts 曲线绘制
type Charts struct {
	*Record
	Log logrus.FieldLogger // 可为 nil
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	iv, ok := c.Last()
	if !ok {
		return ErrNoData
	}
	labels := c.Labels()
	xs := make([]string, len(iv.X))
	for i, x := range iv.X {
		xs[i] = fmt.Sprintf("%.4g", x)
	}

	// 被积函数
	lineF := charts.NewLine()
	lineF.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeWesteros,
			PageTitle: "rational integral",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "被积函数",
			Subtitle: fmt.Sprintf("P(x)/Q(x) on [%g, %g] = %.12g", iv.A, iv.B, iv.Value),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)
	lineF.SetXAxis(xs).AddSeries("P/Q", lineData(iv.Y))
	lineF.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{
		Smooth:     opts.Bool(true),
		ShowSymbol: opts.Bool(false),
	}))

	// 各简单元素
	lineE := charts.NewLine()
	lineE.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "部分分式",
			Subtitle: "各简单元素（已乘 1/lead(Q)）与多项式部分",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)
	lineE.SetXAxis(xs)
	for j, part := range iv.Parts {
		lineE.AddSeries(labels[j], lineData(part))
	}
	lineE.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{
		ShowSymbol: opts.Bool(false),
	}))

	// 积分贡献
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "积分贡献",
			Subtitle: "各项在积分区间上的定积分",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	items := make([]opts.BarData, len(iv.Contributions))
	for i, v := range iv.Contributions {
		items[i] = opts.BarData{Name: labels[i], Value: v}
	}
	bar.SetXAxis(labels).AddSeries("∫", items)

	// 根的分布
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "分母的根",
			Subtitle: "复平面上半部分，虚部 >= 0",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Re", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Im", Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	points := make([]opts.ScatterData, len(c.Roots))
	for i, r := range c.Roots {
		points[i] = opts.ScatterData{
			Name:       fmt.Sprintf("%s (x%d)", r.Text, r.Multiplicity),
			Value:      []float64{r.Re, r.Im},
			SymbolSize: 8 + 4*r.Multiplicity,
		}
	}
	scatter.AddSeries("roots", points)

	// 构建界面
	page := components.NewPage()
	page.PageTitle = "rational integral"
	page.AddCharts(
		lineF,
		lineE,
		bar,
		scatter,
	)
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		c.Error(err)
		http.Error(w, err.Error(), http.StatusNotFound)
	}
}

func (c *Charts) Error(err error) {
	if c.Log != nil {
		c.Log.Error(err)
	}
}

func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, len(values))
	for i, v := range values {
		items[i] = opts.LineData{Value: v}
	}
	return items
}
