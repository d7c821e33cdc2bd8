package roots

import (
	"math"
	"math/cmplx"
)

// 默认聚类参数
var (
	DefaultClusterEpsilon = 1e-6 // 视为同一个根的距离
	DefaultDecimals       = 7    // 新根保留的小数位数
)

// Cluster 将带数值误差的根列表合并为去重的根及其重数
// 参数:
//
//	raw      - Finder 返回的根（按找到的顺序）
//	eps      - 合并阈值，同时用于将小虚部置零
//	decimals - 新根四舍五入保留的小数位数
//
// 功能:
//  1. 虚部绝对值小于 eps 视为实根
//  2. 与已有根距离不超过 eps 时重数加一（线性扫描，取第一个匹配）
//  3. 否则仅当虚部 >= 0 时作为新根加入，共轭根被丢弃
func Cluster(raw []complex128, eps float64, decimals int) []Root {
	unique := make([]Root, 0, len(raw))
	for _, z := range raw {
		if math.Abs(imag(z)) < eps {
			z = complex(real(z), 0)
		}
		matched := false
		for i := range unique {
			if cmplx.Abs(z-unique[i].Value) <= eps {
				unique[i].Multiplicity++
				matched = true
				break
			}
		}
		if !matched && imag(z) >= 0 {
			unique = append(unique, Root{Value: round(z, decimals), Multiplicity: 1})
		}
	}
	return unique
}

// round 实部和虚部分别四舍五入到 decimals 位小数
func round(z complex128, decimals int) complex128 {
	scale := math.Pow(10, float64(decimals))
	re := math.RoundToEven(real(z)*scale) / scale
	im := math.RoundToEven(imag(z)*scale) / scale
	// 避免 -0
	return complex(re+0, im+0)
}
