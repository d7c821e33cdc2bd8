package maths

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrZeroDivisor 除数为零多项式
var ErrZeroDivisor = errors.New("poly: division by zero polynomial")

// Poly 多项式，系数按升幂排列：下标 i 为 x^i 的系数。
// 所有运算返回新的多项式，不修改接收者。
type Poly[T Number] []T

// NewPoly 从系数列表创建多项式（复制输入）
func NewPoly[T Number](coeffs ...T) Poly[T] {
	p := make(Poly[T], len(coeffs))
	copy(p, coeffs)
	return p
}

// Complex 将实系数多项式提升为复系数多项式
func Complex(p Poly[float64]) Poly[complex128] {
	c := make(Poly[complex128], len(p))
	for i, v := range p {
		c[i] = complex(v, 0)
	}
	return c
}

// Real 取复系数多项式的实部
func Real(p Poly[complex128]) Poly[float64] {
	r := make(Poly[float64], len(p))
	for i, v := range p {
		r[i] = real(v)
	}
	return r
}

// Degree 返回最后一个非零系数的下标，零多项式返回 -1
func (p Poly[T]) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}

// Lead 首项系数
func (p Poly[T]) Lead() T {
	if d := p.Degree(); d >= 0 {
		return p[d]
	}
	return 0
}

// Trim 去掉末尾的零系数
func (p Poly[T]) Trim() Poly[T] {
	return NewPoly(p[:p.Degree()+1]...)
}

// Coeffs 返回 x^0..x^n 的系数，不足补零，超出截断
func (p Poly[T]) Coeffs(n int) []T {
	out := make([]T, n+1)
	copy(out, p)
	return out
}

// Eval 使用 Horner 法求值
func (p Poly[T]) Eval(x T) T {
	var r T
	for i := len(p) - 1; i >= 0; i-- {
		r = r*x + p[i]
	}
	return r
}

// Add 多项式加法
func (p Poly[T]) Add(q Poly[T]) Poly[T] {
	n := max(len(p), len(q))
	r := make(Poly[T], n)
	copy(r, p)
	for i, v := range q {
		r[i] += v
	}
	return r
}

// Scale 数乘
func (p Poly[T]) Scale(c T) Poly[T] {
	r := make(Poly[T], len(p))
	for i, v := range p {
		r[i] = v * c
	}
	return r
}

// Mul 多项式乘法
func (p Poly[T]) Mul(q Poly[T]) Poly[T] {
	if len(p) == 0 || len(q) == 0 {
		return Poly[T]{}
	}
	r := make(Poly[T], len(p)+len(q)-1)
	for i, a := range p {
		if a == 0 {
			continue
		}
		for j, b := range q {
			r[i+j] += a * b
		}
	}
	return r
}

// Pow 整数次幂（平方求幂），Pow(0) 为常数 1
func (p Poly[T]) Pow(n int) Poly[T] {
	if n < 0 {
		panic("poly: negative power")
	}
	r := Poly[T]{1}
	base := NewPoly(p...)
	for n > 0 {
		if n&1 == 1 {
			r = r.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return r
}

// Div 多项式长除法，返回商与余式。
// 被除数次数低于除数时商为空，余式为被除数本身。
func (p Poly[T]) Div(q Poly[T]) (quot, rem Poly[T], err error) {
	dq := q.Degree()
	if dq < 0 {
		return nil, nil, ErrZeroDivisor
	}
	dp := p.Degree()
	if dp < dq {
		return Poly[T]{}, NewPoly(p...), nil
	}
	rem = NewPoly(p[:dp+1]...)
	quot = make(Poly[T], dp-dq+1)
	lead := q[dq]
	// 从最高次开始逐项消去
	for k := dp - dq; k >= 0; k-- {
		c := rem[k+dq] / lead
		quot[k] = c
		for j := 0; j <= dq; j++ {
			rem[k+j] -= c * q[j]
		}
	}
	return quot, rem[:dq], nil
}

// Integral 逐项积分（积分常数为零）：结果的 x^(i+1) 系数为 p[i]/(i+1)
func (p Poly[T]) Integral() Poly[T] {
	r := make(Poly[T], len(p)+1)
	for i, v := range p {
		r[i+1] = v / fromFloat[T](float64(i+1))
	}
	return r
}

// DefiniteIntegral 在 [a,b] 上的定积分
func (p Poly[T]) DefiniteIntegral(a, b T) T {
	in := p.Integral()
	return in.Eval(b) - in.Eval(a)
}

// String 按降幂输出表达式，例如 "17x^5 - 12x^3 + 6x + 1"
func (p Poly[T]) String() string {
	var sb strings.Builder
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == 0 {
			continue
		}
		coeff, neg := formatCoeff(p[i])
		switch {
		case sb.Len() == 0 && neg:
			sb.WriteString("-")
		case sb.Len() > 0 && neg:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		if coeff != "1" || i == 0 {
			sb.WriteString(coeff)
		}
		switch i {
		case 0:
		case 1:
			sb.WriteString("x")
		default:
			sb.WriteString("x^" + strconv.Itoa(i))
		}
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}

// formatCoeff 格式化系数，实数返回绝对值与符号
func formatCoeff[T Number](v T) (string, bool) {
	switch x := any(v).(type) {
	case float32:
		return strconv.FormatFloat(float64(Abs(x)), 'g', -1, 32), x < 0
	case float64:
		return strconv.FormatFloat(Abs(x), 'g', -1, 64), x < 0
	default:
		return fmt.Sprintf("%v", v), false
	}
}
