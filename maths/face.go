package maths

import (
	"math"
	"math/cmplx"
)

// 浮点精度阈值
const (
	Epsilon        = 1e-15   // 视为零的阈值（主元、首项系数）
	MachineEpsilon = 0x1p-52 // float64 机器精度
)

// Number 是一个约束，允许任何浮点或复数类型
type Number interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// Abs 是一个泛型函数，返回任何支持的 Number 类型的绝对值（复数取模）。
func Abs[T Number](v T) float64 {
	// 通过类型断言检查具体类型
	switch x := any(v).(type) {
	case float32:
		return math.Abs(float64(x))
	case float64:
		return math.Abs(x)
	case complex64:
		return cmplx.Abs(complex128(x))
	case complex128:
		return cmplx.Abs(x)
	}
	return 0
}

// fromFloat 将实数转换为 T（复数时虚部为零）
func fromFloat[T Number](f float64) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(float32(f)).(T)
	case float64:
		return any(f).(T)
	case complex64:
		return any(complex64(complex(f, 0))).(T)
	case complex128:
		return any(complex(f, 0)).(T)
	default:
		panic("unsupported type for fromFloat")
	}
}
