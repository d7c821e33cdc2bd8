package maths

import (
	"errors"
	"math"
	"testing"
)

// polyEquals 比较两个多项式在容差范围内是否相等（忽略末尾零系数）
func polyEquals[T Number](a, b Poly[T], tol float64) bool {
	n := max(len(a), len(b))
	ca, cb := a.Coeffs(n), b.Coeffs(n)
	for i := range ca {
		if Abs(ca[i]-cb[i]) > tol {
			return false
		}
	}
	return true
}

func TestPolyEval(t *testing.T) {
	// p(x) = 1 + 6x - 12x^3 + 17x^5
	p := NewPoly[float64](1, 6, 0, -12, 0, 17)
	tests := []struct {
		x, want float64
	}{
		{0, 1},
		{1, 12},
		{-1, -10},
		{2, 1 + 12 - 96 + 544},
	}
	for _, tt := range tests {
		if got := p.Eval(tt.x); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Eval(%v) = %v, 希望得到 %v", tt.x, got, tt.want)
		}
	}

	// 实系数多项式在复数点求值：x^2 + 1 在 i 处为 0
	q := Complex(NewPoly[float64](1, 0, 1))
	if v := q.Eval(1i); Abs(v) > 1e-15 {
		t.Errorf("(x^2+1)(i) 希望得到 0, 得到 %v", v)
	}
}

func TestPolyDegree(t *testing.T) {
	if d := NewPoly[float64](1, 2, 0, 0).Degree(); d != 1 {
		t.Errorf("希望次数为 1, 得到 %d", d)
	}
	if d := NewPoly[float64](0, 0).Degree(); d != -1 {
		t.Errorf("零多项式希望次数为 -1, 得到 %d", d)
	}
	if l := NewPoly[float64](3, -18, 0).Lead(); l != -18 {
		t.Errorf("希望首项系数为 -18, 得到 %v", l)
	}
	if n := len(NewPoly[float64](1, 2, 0, 0).Trim()); n != 2 {
		t.Errorf("Trim 后希望长度为 2, 得到 %d", n)
	}
}

func TestPolyMulPow(t *testing.T) {
	// (x - 1)(x + 1) = x^2 - 1
	p := NewPoly[float64](-1, 1).Mul(NewPoly[float64](1, 1))
	if !polyEquals(p, NewPoly[float64](-1, 0, 1), 0) {
		t.Errorf("乘法结果错误: %v", p)
	}

	// (x + 1)^5 的二项式系数
	q := NewPoly[float64](1, 1).Pow(5)
	if !polyEquals(q, NewPoly[float64](1, 5, 10, 10, 5, 1), 0) {
		t.Errorf("幂运算结果错误: %v", q)
	}

	// 零次幂为常数 1
	if r := NewPoly[float64](4, 3, 2).Pow(0); !polyEquals(r, NewPoly[float64](1), 0) {
		t.Errorf("Pow(0) 希望得到 [1], 得到 %v", r)
	}
}

func TestPolyIdentity(t *testing.T) {
	// 与 [1] 相乘或求幂不改变操作数
	one := NewPoly[float64](1)
	operands := []Poly[float64]{
		NewPoly[float64](1, 6, 0, -12, 0, 17),
		NewPoly[float64](14, 12, -18),
		NewPoly[float64](-3),
	}
	for _, p := range operands {
		if r := p.Mul(one); !polyEquals(r, p, 0) {
			t.Errorf("p·[1] 希望得到 %v, 得到 %v", p, r)
		}
		if r := one.Mul(p); !polyEquals(r, p, 0) {
			t.Errorf("[1]·p 希望得到 %v, 得到 %v", p, r)
		}
		if r := p.Pow(1); !polyEquals(r, p, 0) {
			t.Errorf("p^1 希望得到 %v, 得到 %v", p, r)
		}
	}
	for _, n := range []int{0, 1, 2, 7} {
		if r := one.Pow(n); !polyEquals(r, one, 0) {
			t.Errorf("[1]^%d 希望得到 [1], 得到 %v", n, r)
		}
	}
}

func TestPolyPure(t *testing.T) {
	// 运算不修改输入
	p := NewPoly[float64](1, 2, 3)
	q := NewPoly[float64](4, 5)
	_ = p.Mul(q)
	_ = p.Pow(3)
	_, _, _ = p.Div(q)
	_ = p.Integral()
	_ = p.Add(q)
	_ = p.Scale(2)
	if !polyEquals(p, NewPoly[float64](1, 2, 3), 0) || !polyEquals(q, NewPoly[float64](4, 5), 0) {
		t.Errorf("输入被修改: p=%v q=%v", p, q)
	}
}

func TestPolyDiv(t *testing.T) {
	// (x^2 + 1) / (x + 1) = (x - 1) 余 2
	quot, rem, err := NewPoly[float64](1, 0, 1).Div(NewPoly[float64](1, 1))
	if err != nil {
		t.Fatalf("Div failed: %v", err)
	}
	if !polyEquals(quot, NewPoly[float64](-1, 1), 1e-15) {
		t.Errorf("商错误: %v", quot)
	}
	if !polyEquals(rem, NewPoly[float64](2), 1e-15) {
		t.Errorf("余式错误: %v", rem)
	}

	// 被除数次数更低：商为空，余式为被除数
	quot, rem, err = NewPoly[float64](3, 2).Div(NewPoly[float64](1, 0, 1))
	if err != nil {
		t.Fatalf("Div failed: %v", err)
	}
	if len(quot) != 0 {
		t.Errorf("希望商为空, 得到 %v", quot)
	}
	if !polyEquals(rem, NewPoly[float64](3, 2), 0) {
		t.Errorf("希望余式为被除数, 得到 %v", rem)
	}

	// 零除数
	if _, _, err = NewPoly[float64](1, 2).Div(NewPoly[float64](0)); !errors.Is(err, ErrZeroDivisor) {
		t.Errorf("希望得到 ErrZeroDivisor, 得到 %v", err)
	}
}

func TestPolyDivIdentity(t *testing.T) {
	// p = quot·q + rem
	p := NewPoly[float64](1, 6, 0, -12, 0, 17)
	q := NewPoly[float64](14, 12, -18)
	quot, rem, err := p.Div(q)
	if err != nil {
		t.Fatalf("Div failed: %v", err)
	}
	if rem.Degree() >= q.Degree() {
		t.Errorf("余式次数 %d 不低于除数次数 %d", rem.Degree(), q.Degree())
	}
	if back := quot.Mul(q).Add(rem); !polyEquals(back, p, 1e-12) {
		t.Errorf("quot·q + rem = %v, 希望得到 %v", back, p)
	}
}

func TestPolyDivComplex(t *testing.T) {
	// 复数根的降阶：(x^2 + 1) / (x - i) = x + i
	p := Complex(NewPoly[float64](1, 0, 1))
	quot, rem, err := p.Div(NewPoly[complex128](-1i, 1))
	if err != nil {
		t.Fatalf("Div failed: %v", err)
	}
	if !polyEquals(quot, NewPoly[complex128](1i, 1), 1e-15) {
		t.Errorf("商错误: %v", quot)
	}
	if len(rem) != 1 || Abs(rem[0]) > 1e-15 {
		t.Errorf("余式希望为零, 得到 %v", rem)
	}
}

func TestPolyIntegral(t *testing.T) {
	// ∫(1 + 2x + 3x^2) = x + x^2 + x^3
	in := NewPoly[float64](1, 2, 3).Integral()
	if !polyEquals(in, NewPoly[float64](0, 1, 1, 1), 1e-15) {
		t.Errorf("不定积分错误: %v", in)
	}
	// ∫_0^2 (x^2 - 1) = 8/3 - 2
	got := NewPoly[float64](-1, 0, 1).DefiniteIntegral(0, 2)
	if math.Abs(got-2.0/3.0) > 1e-14 {
		t.Errorf("定积分希望得到 %v, 得到 %v", 2.0/3.0, got)
	}
	// 空多项式积分为零
	if v := (Poly[float64]{}).DefiniteIntegral(-3, 5); v != 0 {
		t.Errorf("空多项式定积分希望为 0, 得到 %v", v)
	}
}

func TestPolyCoeffs(t *testing.T) {
	c := NewPoly[float64](1, 2).Coeffs(3)
	want := []float64{1, 2, 0, 0}
	for i := range want {
		if c[i] != want[i] {
			t.Errorf("Coeffs[%d] = %v, 希望得到 %v", i, c[i], want[i])
		}
	}
	if n := len(NewPoly[float64](1, 2, 3, 4).Coeffs(1)); n != 2 {
		t.Errorf("截断后希望长度为 2, 得到 %d", n)
	}
}

func TestPolyString(t *testing.T) {
	tests := []struct {
		p    Poly[float64]
		want string
	}{
		{NewPoly[float64](1, 6, 0, -12, 0, 17), "17x^5 - 12x^3 + 6x + 1"},
		{NewPoly[float64](14, 12, -18), "-18x^2 + 12x + 14"},
		{NewPoly[float64](0, 1), "x"},
		{NewPoly[float64](-1, 0, 1), "x^2 - 1"},
		{NewPoly[float64](0.5), "0.5"},
		{NewPoly[float64](), "0"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, 希望得到 %q", got, tt.want)
		}
	}
}
