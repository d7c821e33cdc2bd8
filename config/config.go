// Package config 积分器参数：默认值、YAML 配置文件与 INTEGRAL_ 前缀的环境变量。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"integral/maths"
	"integral/roots"
)

// EnvPrefix 环境变量前缀，例如 INTEGRAL_ROOTS_TOLERANCE
const EnvPrefix = "INTEGRAL"

// RootsConfig 求根参数
type RootsConfig struct {
	Tolerance   float64 `mapstructure:"tolerance" yaml:"tolerance"`
	MaxIter     int     `mapstructure:"max_iter" yaml:"max_iter"`
	Attempts    int     `mapstructure:"attempts" yaml:"attempts"`
	SeedRadius  float64 `mapstructure:"seed_radius" yaml:"seed_radius"`
	LeadEpsilon float64 `mapstructure:"lead_epsilon" yaml:"lead_epsilon"`
}

// ClusterConfig 根聚类参数
type ClusterConfig struct {
	Epsilon  float64 `mapstructure:"epsilon" yaml:"epsilon"`
	Decimals int     `mapstructure:"decimals" yaml:"decimals"`
}

// SolverConfig 线性方程组参数
type SolverConfig struct {
	RCond float64 `mapstructure:"rcond" yaml:"rcond"` // <=0 时自动选取
}

// LogConfig 日志参数
type LogConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	Verbose bool   `mapstructure:"verbose" yaml:"verbose"`
}

// Config 积分器全部参数
type Config struct {
	Roots      RootsConfig   `mapstructure:"roots" yaml:"roots"`
	Cluster    ClusterConfig `mapstructure:"cluster" yaml:"cluster"`
	Solver     SolverConfig  `mapstructure:"solver" yaml:"solver"`
	Seed       int64         `mapstructure:"seed" yaml:"seed"` // 0 表示按时间取种子
	CheckPoles bool          `mapstructure:"check_poles" yaml:"check_poles"`
	Log        LogConfig     `mapstructure:"log" yaml:"log"`
}

// Default 默认参数
func Default() Config {
	return Config{
		Roots: RootsConfig{
			Tolerance:   roots.DefaultTolerance,
			MaxIter:     roots.DefaultMaxIter,
			Attempts:    roots.DefaultAttempts,
			SeedRadius:  roots.DefaultSeedRadius,
			LeadEpsilon: roots.DefaultLeadEpsilon,
		},
		Cluster: ClusterConfig{
			Epsilon:  roots.DefaultClusterEpsilon,
			Decimals: roots.DefaultDecimals,
		},
		CheckPoles: true,
		Log:        LogConfig{Level: "info"},
	}
}

// New 创建带默认值并绑定环境变量的 viper 实例，命令行参数可在 Read 之前绑定
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper, d Config) {
	// 求根
	v.SetDefault("roots.tolerance", d.Roots.Tolerance)
	v.SetDefault("roots.max_iter", d.Roots.MaxIter)
	v.SetDefault("roots.attempts", d.Roots.Attempts)
	v.SetDefault("roots.seed_radius", d.Roots.SeedRadius)
	v.SetDefault("roots.lead_epsilon", d.Roots.LeadEpsilon)

	// 聚类
	v.SetDefault("cluster.epsilon", d.Cluster.Epsilon)
	v.SetDefault("cluster.decimals", d.Cluster.Decimals)

	// 求解
	v.SetDefault("solver.rcond", d.Solver.RCond)

	v.SetDefault("seed", d.Seed)
	v.SetDefault("check_poles", d.CheckPoles)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.verbose", d.Log.Verbose)
}

// Read 读取配置文件（path 为空时只使用默认值、环境变量与已绑定的参数）并校验
func Read(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Load 等价于 Read(New(), path)
func Load(path string) (Config, error) {
	return Read(New(), path)
}

// Validate 检查参数范围
func (c Config) Validate() error {
	var errs []error
	if c.Roots.Tolerance <= 0 {
		errs = append(errs, errors.New("roots.tolerance must be positive"))
	}
	if c.Roots.MaxIter < 1 {
		errs = append(errs, errors.New("roots.max_iter must be at least 1"))
	}
	if c.Roots.Attempts < 1 {
		errs = append(errs, errors.New("roots.attempts must be at least 1"))
	}
	if c.Roots.SeedRadius <= 0 {
		errs = append(errs, errors.New("roots.seed_radius must be positive"))
	}
	if c.Roots.LeadEpsilon < 0 {
		errs = append(errs, errors.New("roots.lead_epsilon must not be negative"))
	}
	if c.Cluster.Epsilon <= 0 {
		errs = append(errs, errors.New("cluster.epsilon must be positive"))
	}
	if c.Cluster.Decimals < 0 || c.Cluster.Decimals > 15 {
		errs = append(errs, errors.New("cluster.decimals must be between 0 and 15"))
	}
	// 聚类阈值小于求根精度时同一个重根会被拆开
	if c.Cluster.Epsilon < c.Roots.Tolerance {
		errs = append(errs, errors.New("cluster.epsilon must not be below roots.tolerance"))
	}
	if c.Solver.RCond >= 1 {
		errs = append(errs, errors.New("solver.rcond must be below 1"))
	}
	if c.Solver.RCond > 0 && c.Solver.RCond < maths.MachineEpsilon {
		errs = append(errs, errors.New("solver.rcond below machine epsilon"))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Save 以 YAML 格式写出配置
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
