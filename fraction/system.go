// Package fraction 构造部分分式系数辨识的线性方程组。
//
// 所有简单元素通分到同一个分母（分母多项式的首一形式）后，
// 每个未知常数对应方程组的一列，每一行对应 x 的一个幂次。
// 例如 A/(x-2) + B/(x-4) 通分后分子为 A(x-4) + B(x-2)：
//
//	   A   B
//	[ -4, -2 ] ← x^0
//	[  1,  1 ] ← x^1
//	[  0,  0 ] ← x^2
package fraction

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"integral/maths"
	"integral/roots"
)

var (
	ErrColumnCount     = errors.New("fraction: unknown count does not match denominator degree")
	ErrRemainderDegree = errors.New("fraction: remainder degree not below denominator degree")
)

// Role 未知常数在简单元素分子中的位置
type Role uint8

const (
	RoleConstant Role = iota // 常数项（第一类的 A，第二类的 B）
	RoleLinear               // 一次项系数（第二类的 A）
)

// Unknown 方程组一列对应的未知常数
type Unknown struct {
	Root  int  // 去重根的下标
	Power int  // 简单元素分母的次数
	Role  Role // 常数项或一次项
}

// System 部分分式方程组 A·x = B
type System struct {
	A        *mat.Dense    // (degree+1) × 未知数个数
	B        *mat.VecDense // 余式系数，补零到 degree+1
	Unknowns []Unknown     // 每一列的含义
	Degree   int           // 分母次数
}

// OtherProduct 除第 skip 个根以外，所有虚部 >= 0 的去重根因式按重数相乘
func OtherProduct(unique []roots.Root, skip int) maths.Poly[float64] {
	prod := maths.NewPoly[float64](1)
	for j, r := range unique {
		if j == skip || imag(r.Value) < 0 {
			continue
		}
		prod = prod.Mul(r.Factor().Pow(r.Multiplicity))
	}
	return prod
}

// Columns 第 index 个去重根贡献的列
// 对每个次数 p = 1..m，公共分子为 Factor^(m-p) · OtherProduct：
// 实根一列；复数根两列（常数项列，随后是整体上移一次的一次项列）
func Columns(unique []roots.Root, index, degree int) (*mat.Dense, []Unknown) {
	r := unique[index]
	if imag(r.Value) < 0 {
		return nil, nil
	}
	other := OtherProduct(unique, index)
	factor := r.Factor()
	cols := r.Unknowns()
	m := mat.NewDense(degree+1, cols, nil)
	unknowns := make([]Unknown, 0, cols)

	col := 0
	for p := 1; p <= r.Multiplicity; p++ {
		common := factor.Pow(r.Multiplicity - p).Mul(other)
		for j, c := range common.Coeffs(degree) {
			m.Set(j, col, c)
		}
		unknowns = append(unknowns, Unknown{Root: index, Power: p, Role: RoleConstant})
		col++
		if r.IsReal() {
			continue
		}
		for j, c := range common.Coeffs(degree - 1) {
			m.Set(j+1, col, c)
		}
		unknowns = append(unknowns, Unknown{Root: index, Power: p, Role: RoleLinear})
		col++
	}
	return m, unknowns
}

// Build 拼接所有去重根的列，右侧为余式系数
// 参数:
//
//	unique    - 去重后的根（按根的顺序拼接）
//	remainder - 分子除以分母后的余式
//	degree    - 分母次数
func Build(unique []roots.Root, remainder maths.Poly[float64], degree int) (*System, error) {
	total := 0
	for _, r := range unique {
		if imag(r.Value) >= 0 {
			total += r.Unknowns()
		}
	}
	if total != degree {
		return nil, fmt.Errorf("%w: %d unknowns for degree %d", ErrColumnCount, total, degree)
	}
	if remainder.Degree() >= degree {
		return nil, fmt.Errorf("%w: %d >= %d", ErrRemainderDegree, remainder.Degree(), degree)
	}

	sys := &System{
		A:        mat.NewDense(degree+1, total, nil),
		B:        mat.NewVecDense(degree+1, remainder.Coeffs(degree)),
		Unknowns: make([]Unknown, 0, total),
		Degree:   degree,
	}
	offset := 0
	for i := range unique {
		cols, unknowns := Columns(unique, i, degree)
		if cols == nil {
			continue
		}
		_, c := cols.Dims()
		sys.A.Slice(0, degree+1, offset, offset+c).(*mat.Dense).Copy(cols)
		sys.Unknowns = append(sys.Unknowns, unknowns...)
		offset += c
	}
	return sys, nil
}

// Recompose 将解向量重新展开为通分后的分子多项式（即 A·x）
func (s *System) Recompose(x mat.Vector) maths.Poly[float64] {
	v := mat.NewVecDense(s.Degree+1, nil)
	v.MulVec(s.A, x)
	return maths.NewPoly(v.RawVector().Data...)
}
