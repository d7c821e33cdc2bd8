package maths

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Solution 线性方程组 Ax = b 的求解结果
type Solution struct {
	X        *mat.VecDense // 解向量
	Residual float64       // 残差 ‖A·x − b‖₂
	Rank     int           // 数值秩
	Square   bool          // A 是否为方阵
	Singular bool          // 方阵奇异或病态，已退化为最小二乘
}

// Solve 求解线性方程组 Ax = b
// 参数:
//
//	a     - 系数矩阵（m×n，可以不是方阵）
//	b     - 右侧向量（长度 m）
//	rcond - 计算秩时奇异值的相对阈值（<=0 时取 max(m,n)·机器精度）
//
// 返回:
//
//	求解结果，错误信息（仅维度不匹配或分解失败）
//
// 算法步骤:
//  1. 方阵：LU 分解（部分主元）求精确解
//  2. 分解奇异或病态：标记 Singular，退化到第 3 步
//  3. 非方阵：SVD 最小范数最小二乘解
func Solve(a mat.Matrix, b mat.Vector, rcond float64) (*Solution, error) {
	// 1. 输入合法性校验
	m, n := a.Dims()
	if m == 0 || n == 0 {
		return nil, errors.New("solve: empty matrix")
	}
	if b.Len() != m {
		return nil, errors.New("solve: vector dimension mismatch")
	}
	sol := &Solution{X: mat.NewVecDense(n, nil), Square: m == n}

	// 2. 方阵优先使用 LU
	if sol.Square {
		var lu mat.LU
		lu.Factorize(a)
		if err := lu.SolveVecTo(sol.X, false, b); err == nil {
			sol.Rank = n
			sol.Residual = residual(a, sol.X, b)
			return sol, nil
		}
		// 奇异或病态（mat.Condition），改用最小二乘
		sol.Singular = true
		sol.X.Zero()
	}

	// 3. SVD 最小二乘
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, errors.New("solve: svd factorization failed")
	}
	if rcond <= 0 {
		rcond = float64(max(m, n)) * MachineEpsilon
	}
	sol.Rank = svd.Rank(rcond)
	if sol.Rank > 0 {
		svd.SolveVecTo(sol.X, b, sol.Rank)
	}
	sol.Residual = residual(a, sol.X, b)
	return sol, nil
}

// residual 计算 ‖A·x − b‖₂
func residual(a mat.Matrix, x, b mat.Vector) float64 {
	m, _ := a.Dims()
	r := mat.NewVecDense(m, nil)
	r.MulVec(a, x)
	r.SubVec(r, b)
	return mat.Norm(r, 2)
}
