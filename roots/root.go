package roots

import (
	"fmt"
	"math"
	"math/cmplx"

	"integral/maths"
)

// Root 去重后的分母根及其重数。
// 复数根只保留共轭对中虚部 >= 0 的一个，实根虚部严格为 0。
type Root struct {
	Value        complex128 // 根的值
	Multiplicity int        // 重数（>= 1）
}

// IsReal 是否为实根
func (r Root) IsReal() bool { return imag(r.Value) == 0 }

// Factor 根对应的首一因式：
// 实根为 (x - r)，复数根为 (x^2 - 2·Re(r)·x + |r|^2)，后者已包含共轭根
func (r Root) Factor() maths.Poly[float64] {
	re, im := real(r.Value), imag(r.Value)
	if im == 0 {
		return maths.NewPoly(-re, 1)
	}
	return maths.NewPoly(re*re+im*im, -2*re, 1)
}

// Unknowns 该根在部分分式中贡献的未知常数个数
func (r Root) Unknowns() int {
	if r.IsReal() {
		return r.Multiplicity
	}
	return 2 * r.Multiplicity
}

func (r Root) String() string {
	if r.Multiplicity == 1 {
		return Format(r.Value, 1e-10)
	}
	return fmt.Sprintf("%s (x%d)", Format(r.Value, 1e-10), r.Multiplicity)
}

// Format 格式化复数，绝对值小于 tol 的分量按 0 处理
func Format(z complex128, tol float64) string {
	re, im := real(z), imag(z)
	if math.Abs(re) < tol {
		re = 0
	}
	if math.Abs(im) < tol {
		im = 0
	}
	switch {
	case cmplx.IsNaN(z):
		return "NaN"
	case im == 0:
		return fmt.Sprintf("%.10g", re)
	case re == 0:
		return fmt.Sprintf("%.10gi", im)
	case im > 0:
		return fmt.Sprintf("%.10g + %.10gi", re, im)
	default:
		return fmt.Sprintf("%.10g - %.10gi", re, -im)
	}
}
