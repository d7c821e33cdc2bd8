package element

import (
	"fmt"
	"math"

	"integral/maths"
)

// Quadratic 第二类简单元素 (A·x + B)/(x^2 + C·x + D)^Power，
// 分母在实数轴上无根（D - C^2/4 > 0）
type Quadratic struct {
	A, B  float64 // 分子 A·x + B
	C, D  float64 // 分母 x^2 + C·x + D
	Power int     // 分母次数（>= 1）
}

func (Quadratic) Kind() Kind { return KindQuadratic }

// q 分母二次式的值
func (e Quadratic) q(x float64) float64 { return x*x + e.C*x + e.D }

// Eval 在 x 处求值
func (e Quadratic) Eval(x float64) float64 {
	return (e.A*x + e.B) / math.Pow(e.q(x), float64(e.Power))
}

// Integrate 闭式定积分
// 分子拆成 A/2·(2x + C) + (B - A·C/2)：
//   - 第一部分是 q'/q^n，积分为对数 (n = 1) 或 q^(1-n)/(1-n)
//   - 第二部分配方 q = (x + α)^2 + β，α = C/2，β = D - α^2，
//     n = 1 为反正切；n > 1 代换 x + α = √β·tanθ 化为 √β/β^n·∫cos^(2n-2)θ dθ
func (e Quadratic) Integrate(a, b float64) float64 {
	alpha := e.C / 2
	beta := e.D - alpha*alpha
	sb := math.Sqrt(beta)
	lo := math.Atan((a + alpha) / sb)
	hi := math.Atan((b + alpha) / sb)
	rest := e.B - e.A*alpha

	if e.Power == 1 {
		logPart := e.A / 2 * (math.Log(math.Abs(e.q(b))) - math.Log(math.Abs(e.q(a))))
		return logPart + rest/sb*(hi-lo)
	}
	k := float64(1 - e.Power)
	algebraic := e.A / 2 * (math.Pow(e.q(b), k) - math.Pow(e.q(a), k)) / k
	reduced := rest * sb / math.Pow(beta, float64(e.Power)) * CosinePower(2*e.Power-2, lo, hi)
	return algebraic + reduced
}

// Denominator 分母基础二次式 x^2 + C·x + D
func (e Quadratic) Denominator() maths.Poly[float64] {
	return maths.NewPoly(e.D, e.C, 1)
}

func (e Quadratic) String() string {
	num := maths.NewPoly(e.B, e.A).String()
	den := "(" + e.Denominator().String() + ")"
	if e.Power > 1 {
		den = fmt.Sprintf("%s^%d", den, e.Power)
	}
	return fmt.Sprintf("(%s)/%s", num, den)
}
