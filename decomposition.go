package integral

import (
	"fmt"
	"math"
	"strings"

	"integral/element"
	"integral/fraction"
	"integral/maths"
	"integral/roots"
)

// Decomposition 有理函数 P/Q 的部分分式分解：
//
//	P/Q = Quotient + Scale·Σ Elements
type Decomposition struct {
	Numerator   maths.Poly[float64]
	Denominator maths.Poly[float64]
	Quotient    maths.Poly[float64] // 多项式部分
	Remainder   maths.Poly[float64] // 余式
	Roots       []roots.Root        // 去重后的分母根
	Elements    []element.Element   // 简单元素，分子已求解
	Scale       float64             // 1/lead(Q)
	System      *fraction.System
	Solution    *maths.Solution

	CheckPoles  bool    // 积分前检查区间内的实根
	PoleEpsilon float64 // 极点检查的区间外扩量
}

// Eval 按分解后的形式计算 P(x)/Q(x)
func (d *Decomposition) Eval(x float64) float64 {
	sum := 0.0
	for _, e := range d.Elements {
		sum += e.Eval(x)
	}
	return d.Quotient.Eval(x) + d.Scale*sum
}

// Contributions 各简单元素在 [a,b] 上的积分（已乘 Scale），最后一项为多项式部分
func (d *Decomposition) Contributions(a, b float64) []float64 {
	out := make([]float64, 0, len(d.Elements)+1)
	for _, e := range d.Elements {
		out = append(out, d.Scale*e.Integrate(a, b))
	}
	return append(out, d.Quotient.DefiniteIntegral(a, b))
}

// Poles 分母的全部实根
func (d *Decomposition) Poles() []float64 {
	var poles []float64
	for _, r := range d.Roots {
		if r.IsReal() {
			poles = append(poles, real(r.Value))
		}
	}
	return poles
}

// Integrate 计算 [a,b] 上的定积分，a > b 时结果取反
func (d *Decomposition) Integrate(a, b float64) (float64, error) {
	if !finite(a) || !finite(b) {
		return 0, fmt.Errorf("%w: bounds [%g, %g]", ErrDegenerateInput, a, b)
	}
	if a == b {
		return 0, nil
	}
	if d.CheckPoles {
		lo, hi := math.Min(a, b)-d.PoleEpsilon, math.Max(a, b)+d.PoleEpsilon
		for _, r := range d.Poles() {
			if r >= lo && r <= hi {
				return 0, fmt.Errorf("%w: x = %g in [%g, %g]", ErrPoleInInterval, r, a, b)
			}
		}
	}

	total := 0.0
	for _, c := range d.Contributions(a, b) {
		total += c
	}
	if !finite(total) {
		return 0, fmt.Errorf("%w: %g on [%g, %g]", ErrNonFinite, total, a, b)
	}
	return total, nil
}

func (d *Decomposition) String() string {
	terms := make([]string, len(d.Elements))
	for i, e := range d.Elements {
		terms[i] = e.String()
	}
	s := fmt.Sprintf("(%s)/%g", strings.Join(terms, " + "), 1/d.Scale)
	if d.Quotient.Degree() >= 0 {
		s = d.Quotient.String() + " + " + s
	}
	return s
}

// elements 按方程组的列顺序将解向量还原为简单元素
func elements(unique []roots.Root, sys *fraction.System, x []float64) []element.Element {
	out := make([]element.Element, 0, len(x))
	for i := 0; i < len(sys.Unknowns); i++ {
		u := sys.Unknowns[i]
		r := unique[u.Root]
		if r.IsReal() {
			out = append(out, element.Real{A: x[i], R: real(r.Value), Power: u.Power})
			continue
		}
		// 复数根：常数项列后紧跟一次项列
		f := r.Factor()
		out = append(out, element.Quadratic{A: x[i+1], B: x[i], C: f[1], D: f[0], Power: u.Power})
		i++
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
