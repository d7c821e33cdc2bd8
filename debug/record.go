// Package debug 记录分解与积分过程，输出 JSON、网页曲线（go-echarts）与图片（gonum/plot）。
package debug

import (
	"encoding/json"
	"io"

	"gonum.org/v1/gonum/floats"

	"integral"
	"integral/roots"
)

// DefaultPoints 每个积分区间的采样点数
var DefaultPoints = 201

// Root 根的记录
type Root struct {
	Re           float64 `json:"re"`
	Im           float64 `json:"im"`
	Multiplicity int     `json:"multiplicity"`
	Text         string  `json:"text"`
}

// Interval 一次积分的记录
type Interval struct {
	A             float64     `json:"a"`
	B             float64     `json:"b"`
	Value         float64     `json:"value"`
	Error         string      `json:"error,omitempty"`
	Contributions []float64   `json:"contributions,omitempty"` // 各简单元素，最后一项为多项式部分
	X             []float64   `json:"x,omitempty"`             // 采样点
	Y             []float64   `json:"y,omitempty"`             // P/Q 在采样点的值
	Parts         [][]float64 `json:"parts,omitempty"`         // 各项在采样点的值，顺序同 Contributions
}

// Record 记录历史状态
type Record struct {
	Numerator   []float64  `json:"numerator"`
	Denominator []float64  `json:"denominator"`
	Quotient    []float64  `json:"quotient"`
	Scale       float64    `json:"scale"`
	Roots       []Root     `json:"roots"`
	Elements    []string   `json:"elements"` // 简单元素表达式
	Rank        int        `json:"rank"`
	Residual    float64    `json:"residual"`
	Singular    bool       `json:"singular"`
	Intervals   []Interval `json:"intervals"`

	Points int `json:"-"` // 采样点数，<=1 时使用 DefaultPoints

	d *integral.Decomposition
}

// Init 记录分解结果
func (list *Record) Init(d *integral.Decomposition) {
	list.d = d
	list.Numerator = append([]float64{}, d.Numerator...)
	list.Denominator = append([]float64{}, d.Denominator...)
	list.Quotient = append([]float64{}, d.Quotient...)
	list.Scale = d.Scale
	list.Roots = list.Roots[:0]
	for _, r := range d.Roots {
		list.Roots = append(list.Roots, Root{
			Re:           real(r.Value),
			Im:           imag(r.Value),
			Multiplicity: r.Multiplicity,
			Text:         roots.Format(r.Value, 1e-10),
		})
	}
	list.Elements = list.Elements[:0]
	for _, e := range d.Elements {
		list.Elements = append(list.Elements, e.String())
	}
	list.Rank = d.Solution.Rank
	list.Residual = d.Solution.Residual
	list.Singular = d.Solution.Singular
}

// Update 记录一次积分，成功时对区间采样
func (list *Record) Update(a, b, value float64, err error) {
	iv := Interval{A: a, B: b, Value: value}
	if err != nil {
		iv.Error = err.Error()
	}
	if list.d != nil && err == nil && a != b {
		iv.Contributions = list.d.Contributions(a, b)
		n := list.Points
		if n <= 1 {
			n = DefaultPoints
		}
		iv.X = floats.Span(make([]float64, n), min(a, b), max(a, b))
		iv.Y = make([]float64, n)
		iv.Parts = make([][]float64, len(list.d.Elements)+1)
		for j := range iv.Parts {
			iv.Parts[j] = make([]float64, n)
		}
		for i, x := range iv.X {
			iv.Y[i] = list.d.Eval(x)
			for j, e := range list.d.Elements {
				iv.Parts[j][i] = list.d.Scale * e.Eval(x)
			}
			iv.Parts[len(list.d.Elements)][i] = list.d.Quotient.Eval(x)
		}
	}
	list.Intervals = append(list.Intervals, iv)
}

// Last 最近一次成功的积分记录
func (list *Record) Last() (Interval, bool) {
	for i := len(list.Intervals) - 1; i >= 0; i-- {
		if list.Intervals[i].Error == "" && len(list.Intervals[i].X) > 0 {
			return list.Intervals[i], true
		}
	}
	return Interval{}, false
}

// Labels 各项的名称，顺序同 Interval.Contributions
func (list *Record) Labels() []string {
	labels := append([]string{}, list.Elements...)
	return append(labels, "polynomial")
}

// Render 格式和输出内容
func (list *Record) Render(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
