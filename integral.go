// Package integral 通过部分分式分解计算有理函数 P(x)/Q(x) 的定积分。
//
// 流程：多项式除法取整式部分 → Muller 法求分母全部复根 → 根聚类得到重数 →
// 构造并求解部分分式系数方程组 → 各简单元素闭式积分求和。
package integral

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"integral/config"
	"integral/fraction"
	"integral/maths"
	"integral/roots"
)

// Debug 调试接口，分解完成后调用 Init，每次积分后调用 Update
type Debug interface {
	Init(d *Decomposition)
	Update(a, b, value float64, err error)
	Render(w io.Writer) error
}

type debug struct{}

func (debug) Init(*Decomposition)             {}
func (debug) Update(_, _, _ float64, _ error) {}
func (debug) Render(w io.Writer) error        { return nil }

// Integrator 持有参数与随机源，不能并发使用
type Integrator struct {
	Config config.Config
	Debug  Debug

	finder *roots.Finder
	log    logrus.FieldLogger
}

// Option 创建积分器时的可选设置
type Option func(*Integrator)

// WithRand 指定求根初始点的随机源
func WithRand(r *rand.Rand) Option {
	return func(it *Integrator) { it.finder.Rand = r }
}

// WithLogger 指定日志
func WithLogger(log logrus.FieldLogger) Option {
	return func(it *Integrator) {
		it.log = log
		it.finder.Log = log
	}
}

// WithDebug 指定调试记录
func WithDebug(d Debug) Option {
	return func(it *Integrator) { it.Debug = d }
}

// New 按配置创建积分器，Seed 为 0 时以当前时间作为随机种子
func New(cfg config.Config, opts ...Option) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	it := &Integrator{
		Config: cfg,
		Debug:  debug{},
		log:    silent,
		finder: &roots.Finder{
			Tolerance:   cfg.Roots.Tolerance,
			MaxIter:     cfg.Roots.MaxIter,
			Attempts:    cfg.Roots.Attempts,
			SeedRadius:  cfg.Roots.SeedRadius,
			LeadEpsilon: cfg.Roots.LeadEpsilon,
			Rand:        rand.New(rand.NewSource(seed)),
		},
	}
	for _, opt := range opts {
		opt(it)
	}
	return it, nil
}

// Integrate 使用默认参数计算 ∫[a,b] P(x)/Q(x) dx，系数按升幂排列
func Integrate(num, den []float64, a, b float64) (float64, error) {
	it, err := New(config.Default())
	if err != nil {
		return 0, err
	}
	return it.Integrate(num, den, a, b)
}

// Integrate 计算 ∫[a,b] P(x)/Q(x) dx，系数按升幂排列
func (it *Integrator) Integrate(num, den []float64, a, b float64) (float64, error) {
	if !finite(a) || !finite(b) {
		return 0, fmt.Errorf("%w: bounds [%g, %g]", ErrDegenerateInput, a, b)
	}
	d, err := it.Decompose(num, den)
	if err != nil {
		return 0, err
	}
	value, err := d.Integrate(a, b)
	it.Debug.Update(a, b, value, err)
	if err != nil {
		return 0, err
	}
	it.log.WithFields(logrus.Fields{"a": a, "b": b}).Debugf("integral = %.15g", value)
	return value, nil
}

// Decompose 将 P/Q 分解为多项式部分与简单元素之和
// 参数:
//
//	num - 分子系数（升幂）
//	den - 分母系数（升幂），次数至少为 1
//
// 算法步骤:
//  1. 输入检查，P 除以 Q 得到商与余式
//  2. 求 Q 的全部复根并聚类
//  3. 构造部分分式方程组，以首一分母通分
//  4. 求解方程组得到各简单元素的分子
func (it *Integrator) Decompose(num, den []float64) (*Decomposition, error) {
	// 1. 输入检查与多项式除法
	p, q := maths.NewPoly(num...).Trim(), maths.NewPoly(den...).Trim()
	if err := validate(p, q); err != nil {
		return nil, err
	}
	degree := q.Degree()
	quot, rem, err := p.Div(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateInput, err)
	}

	// 2. 求根与聚类
	raw, err := it.finder.Find(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootFinding, err)
	}
	unique := roots.Cluster(raw, it.Config.Cluster.Epsilon, it.Config.Cluster.Decimals)
	it.log.WithFields(logrus.Fields{"degree": degree, "found": len(raw), "unique": len(unique)}).Debug("roots clustered")

	// 3. 方程组
	sys, err := fraction.Build(unique, rem, degree)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootFinding, err)
	}

	// 4. 求解
	sol, err := maths.Solve(sys.A, sys.B, it.Config.Solver.RCond)
	if err != nil {
		return nil, err
	}
	if _, cols := sys.A.Dims(); sol.Singular || sol.Rank < cols {
		it.log.WithFields(logrus.Fields{"rank": sol.Rank, "unknowns": cols, "residual": sol.Residual}).Warn("partial fraction system is rank deficient")
	}

	d := &Decomposition{
		Numerator:   p,
		Denominator: q,
		Quotient:    quot,
		Remainder:   rem,
		Roots:       unique,
		Elements:    elements(unique, sys, sol.X.RawVector().Data),
		Scale:       1 / q.Lead(),
		System:      sys,
		Solution:    sol,
		CheckPoles:  it.Config.CheckPoles,
		PoleEpsilon: it.Config.Cluster.Epsilon,
	}
	it.Debug.Init(d)
	return d, nil
}

// validate 分母次数至少为 1，所有系数为有限数
func validate(p, q maths.Poly[float64]) error {
	for _, c := range p {
		if !finite(c) {
			return fmt.Errorf("%w: numerator coefficient %g", ErrDegenerateInput, c)
		}
	}
	for _, c := range q {
		if !finite(c) {
			return fmt.Errorf("%w: denominator coefficient %g", ErrDegenerateInput, c)
		}
	}
	if q.Degree() < 1 {
		return fmt.Errorf("%w: denominator degree %d", ErrDegenerateInput, q.Degree())
	}
	return nil
}
