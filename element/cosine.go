package element

import "math"

// CosinePower 计算 ∫_lo^hi cos^m(θ) dθ
// 递推公式 I(m) = [sin·cos^(m-1)]/m + (m-1)/m·I(m-2)，
// 从同奇偶的初值 I(0) = hi-lo 或 I(1) = sin(hi)-sin(lo) 向上迭代
func CosinePower(m int, lo, hi float64) float64 {
	if m < 0 {
		panic("element: negative cosine power")
	}
	sinLo, sinHi := math.Sin(lo), math.Sin(hi)
	cosLo, cosHi := math.Cos(lo), math.Cos(hi)

	var acc float64
	k := m % 2
	if k == 0 {
		acc = hi - lo
	} else {
		acc = sinHi - sinLo
	}
	for k += 2; k <= m; k += 2 {
		n := float64(k)
		edge := sinHi*math.Pow(cosHi, n-1) - sinLo*math.Pow(cosLo, n-1)
		acc = edge/n + (n-1)/n*acc
	}
	return acc
}
