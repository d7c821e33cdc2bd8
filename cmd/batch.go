package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"integral"
	"integral/config"
)

// Problem 批量文件中的一个积分
type Problem struct {
	Name        string    `yaml:"name"`
	Numerator   []float64 `yaml:"numerator"`
	Denominator []float64 `yaml:"denominator"`
	A           float64   `yaml:"a"`
	B           float64   `yaml:"b"`
}

// Result 一个积分的结果
type Result struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
	Error string  `yaml:"error,omitempty"`
}

// BatchFile 批量文件
type BatchFile struct {
	Problems []Problem `yaml:"problems"`
}

// LoadBatch 读取批量文件
func LoadBatch(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file BatchFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(file.Problems) == 0 {
		return nil, fmt.Errorf("%s: no problems", path)
	}
	for i := range file.Problems {
		if file.Problems[i].Name == "" {
			file.Problems[i].Name = fmt.Sprintf("#%d", i+1)
		}
	}
	return &file, nil
}

// RunBatch 并发计算全部积分，每个问题使用独立的积分器与随机源。
// 单个问题失败只记录在结果中，不影响其他问题。
func RunBatch(cmd *cobra.Command, cfg config.Config, problems []Problem, workers int) ([]Result, error) {
	log := config.NewLogger(cfg.Log, cmd.ErrOrStderr())
	results := make([]Result, len(problems))
	g, ctx := errgroup.WithContext(cmd.Context())
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	g.SetLimit(workers)

	for i, p := range problems {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pc := cfg
			if cfg.Seed != 0 {
				pc.Seed = cfg.Seed + int64(i)
			}
			entry := log.WithField("problem", p.Name)
			it, err := integral.New(pc, integral.WithLogger(entry))
			if err != nil {
				return err
			}
			results[i] = Result{Name: p.Name}
			value, err := it.Integrate(p.Numerator, p.Denominator, p.A, p.B)
			if err != nil {
				entry.WithError(err).Warn("integration failed")
				results[i].Error = err.Error()
				return nil
			}
			results[i].Value = value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func newBatchCmd(v *viper.Viper, configPath *string) *cobra.Command {
	var (
		workers int
		output  string
	)
	cmd := &cobra.Command{
		Use:   "batch <file.yaml>",
		Short: "Integrate every problem of a YAML file concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read(v, *configPath)
			if err != nil {
				return err
			}
			file, err := LoadBatch(args[0])
			if err != nil {
				return err
			}
			results, err := RunBatch(cmd, cfg, file.Problems, workers)
			if err != nil {
				return err
			}
			printResults(cmd.OutOrStdout(), results)
			if output != "" {
				data, err := yaml.Marshal(map[string][]Result{"results": results})
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return err
				}
			}
			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d problems failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent problems (0 = number of CPUs)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write results as YAML")
	return cmd
}

func printResults(w io.Writer, results []Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVALUE")
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\terror: %s\n", r.Name, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.15g\n", r.Name, r.Value)
	}
	tw.Flush()
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config <path>",
		Short: "Write the default configuration as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().Save(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "default configuration written to %s\n", args[0])
			return nil
		},
	}
}
