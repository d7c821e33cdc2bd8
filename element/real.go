package element

import (
	"fmt"
	"math"
)

// Real 第一类简单元素 A/(x-R)^Power
type Real struct {
	A     float64 // 分子常数
	R     float64 // 实极点
	Power int     // 分母次数（>= 1）
}

func (Real) Kind() Kind { return KindReal }

// Eval 在 x 处求值
func (e Real) Eval(x float64) float64 {
	return e.A / math.Pow(x-e.R, float64(e.Power))
}

// Integrate 闭式定积分
//
//	n = 1: A·(ln|b-r| - ln|a-r|)
//	n > 1: A/(1-n)·[(b-r)^(1-n) - (a-r)^(1-n)]
func (e Real) Integrate(a, b float64) float64 {
	if e.Power == 1 {
		return e.A * (math.Log(math.Abs(b-e.R)) - math.Log(math.Abs(a-e.R)))
	}
	k := float64(1 - e.Power)
	return e.A / k * (math.Pow(b-e.R, k) - math.Pow(a-e.R, k))
}

func (e Real) String() string {
	den := fmt.Sprintf("(x - %g)", e.R)
	switch {
	case e.R == 0:
		den = "x"
	case e.R < 0:
		den = fmt.Sprintf("(x + %g)", -e.R)
	}
	if e.Power > 1 {
		den = fmt.Sprintf("%s^%d", den, e.Power)
	}
	return fmt.Sprintf("%g/%s", e.A, den)
}
