package element

// Kind 简单元素种类
type Kind uint8

const (
	KindReal      Kind = iota // 第一类：A/(x-r)^n
	KindQuadratic             // 第二类：(Ax+B)/(x^2+Cx+D)^n
)

func (k Kind) String() string {
	switch k {
	case KindReal:
		return "real"
	case KindQuadratic:
		return "quadratic"
	}
	return "unknown"
}

// Element 部分分式中的一个简单元素
type Element interface {
	Kind() Kind                     // 元素种类
	Eval(x float64) float64         // 在 x 处求值
	Integrate(a, b float64) float64 // [a,b] 上的定积分（闭式）
	String() string
}
