package integral

import "errors"

var (
	// ErrDegenerateInput 分母为零或常数、首项系数为零、系数或积分限不是有限数
	ErrDegenerateInput = errors.New("integral: degenerate input")
	// ErrRootFinding 分母的根没有全部找到，部分分式方程组欠定
	ErrRootFinding = errors.New("integral: root finding incomplete")
	// ErrPoleInInterval 积分区间内含有分母的实根
	ErrPoleInInterval = errors.New("integral: pole inside integration interval")
	// ErrNonFinite 积分结果为 NaN 或 ±Inf
	ErrNonFinite = errors.New("integral: non-finite result")
)
