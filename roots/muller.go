package roots

import (
	"math/cmplx"

	"integral/maths"
)

// Muller 使用 Muller 法从三个初始点迭代逼近多项式的一个根
// 参数:
//
//	p          - 多项式（复系数）
//	x0, x1, x2 - 三个初始点
//	maxIter    - 最大迭代次数
//	tol        - 相邻两次估计的收敛阈值
//
// 返回:
//
//	根的估计值，迭代次数
//
// 算法步骤:
//  1. 用差商构造过最近三个点的抛物线 a·h^2 + b·h + c
//  2. 取离 x2 更近的抛物线根：分母 b ± √(b^2 − 4ac) 取模更大者
//  3. a 可忽略时退化为割线步；点重合或分母为零时提前返回当前估计
func Muller(p maths.Poly[complex128], x0, x1, x2 complex128, maxIter int, tol float64) (complex128, int) {
	for iter := 0; iter < maxIter; iter++ {
		f0, f1, f2 := p.Eval(x0), p.Eval(x1), p.Eval(x2)

		h0 := x1 - x0
		h1 := x2 - x1
		if cmplx.Abs(h0) < maths.Epsilon || cmplx.Abs(h1) < maths.Epsilon {
			return x2, iter
		}

		// 差商
		d0 := (f1 - f0) / h0
		d1 := (f2 - f1) / h1

		// 抛物线系数
		a := (d1 - d0) / (h1 + h0)
		b := a*h1 + d1
		c := f2

		var x3 complex128
		if cmplx.Abs(a) < maths.Epsilon {
			// 近似直线
			if cmplx.Abs(b) < maths.Epsilon {
				return x2, iter
			}
			x3 = x2 - c/b
		} else {
			sq := cmplx.Sqrt(b*b - 4*a*c)
			den := b - sq
			if cmplx.Abs(b+sq) > cmplx.Abs(b-sq) {
				den = b + sq
			}
			if cmplx.Abs(den) < maths.Epsilon {
				return x2, iter
			}
			x3 = x2 - 2*c/den
		}

		if cmplx.Abs(x3-x2) < tol {
			return x3, iter
		}
		x0, x1, x2 = x1, x2, x3
	}
	return x2, maxIter
}
