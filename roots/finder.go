package roots

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/sirupsen/logrus"

	"integral/maths"
)

// ErrIncomplete 找到的根少于多项式次数
var ErrIncomplete = errors.New("roots: root finding incomplete")

// IncompleteError 记录求根中断时已找到的根数
type IncompleteError struct {
	Found  int // 已找到的根数
	Degree int // 多项式次数
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("roots: found %d of %d roots", e.Found, e.Degree)
}

// Is 使 errors.Is(err, ErrIncomplete) 成立
func (e *IncompleteError) Is(target error) bool { return target == ErrIncomplete }

// 默认参数
var (
	DefaultTolerance   = 1e-10 // 接受根的残差阈值 |p(root)|
	DefaultMaxIter     = 100   // Muller 最大迭代次数
	DefaultAttempts    = 5     // 每个根的随机尝试次数
	DefaultSeedRadius  = 5.0   // 初始点取自 [-R,R]×[-R,R]
	DefaultLeadEpsilon = 1e-15 // 一次多项式首项系数的零阈值
)

// Finder Muller 法 + 降阶求多项式全部根
type Finder struct {
	Tolerance   float64
	MaxIter     int
	Attempts    int
	SeedRadius  float64
	LeadEpsilon float64
	Rand        *rand.Rand         // 初始点随机源（显式注入以便复现）
	Log         logrus.FieldLogger // 可为 nil
}

// NewFinder 使用默认参数创建求根器
func NewFinder(r *rand.Rand) *Finder {
	return &Finder{
		Tolerance:   DefaultTolerance,
		MaxIter:     DefaultMaxIter,
		Attempts:    DefaultAttempts,
		SeedRadius:  DefaultSeedRadius,
		LeadEpsilon: DefaultLeadEpsilon,
		Rand:        r,
	}
}

// Find 求实系数多项式的全部复根（含重根，按找到的顺序）。
// 某个根的所有尝试都失败时提前结束，返回已找到的根与 *IncompleteError。
func (f *Finder) Find(p maths.Poly[float64]) ([]complex128, error) {
	degree := p.Degree()
	if degree < 1 {
		return nil, nil
	}
	work := maths.Complex(p.Trim())
	found := make([]complex128, 0, degree)

	// 逐个求根并降阶，直到剩下一次多项式
	for work.Degree() >= 2 {
		root, ok := f.seek(work)
		if !ok {
			f.logf("failed to find root %d after %d attempts", len(found)+1, f.Attempts)
			return found, &IncompleteError{Found: len(found), Degree: degree}
		}
		found = append(found, root)

		quot, _, err := work.Div(maths.NewPoly(-root, 1))
		if err != nil {
			return found, err
		}
		work = quot
	}

	// 一次多项式直接求解 -b/a
	if work.Degree() == 1 {
		if cmplx.Abs(work[1]) > f.LeadEpsilon {
			root := f.snap(-work[0] / work[1])
			found = append(found, root)
			f.logf("found root %d (linear): %s", len(found), Format(root, f.Tolerance))
		}
	}
	if len(found) < degree {
		return found, &IncompleteError{Found: len(found), Degree: degree}
	}
	return found, nil
}

// seek 对当前多项式进行多次随机初始点尝试
func (f *Finder) seek(work maths.Poly[complex128]) (complex128, bool) {
	for attempt := 0; attempt < f.Attempts; attempt++ {
		x0, x1, x2 := f.guess(), f.guess(), f.guess()
		root, iterations := Muller(work, x0, x1, x2, f.MaxIter, f.Tolerance)
		if cmplx.Abs(work.Eval(root)) < f.Tolerance {
			root = f.snap(root)
			f.logf("found root: %s (after %d iterations, attempt %d)", Format(root, f.Tolerance), iterations, attempt+1)
			return root, true
		}
	}
	return 0, false
}

// guess 在 [-R,R]×[-R,R] 内均匀取一个复数初始点
func (f *Finder) guess() complex128 {
	r := f.SeedRadius
	return complex(f.Rand.Float64()*2*r-r, f.Rand.Float64()*2*r-r)
}

// snap 将接近零的实部或虚部置为零
func (f *Finder) snap(z complex128) complex128 {
	re, im := real(z), imag(z)
	if math.Abs(re) < f.Tolerance {
		re = 0
	}
	if math.Abs(im) < f.Tolerance {
		im = 0
	}
	return complex(re, im)
}

func (f *Finder) logf(format string, args ...any) {
	if f.Log != nil {
		f.Log.Debugf(format, args...)
	}
}
