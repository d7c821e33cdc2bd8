package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"integral"
	"integral/config"
	"integral/debug"
	"integral/maths"
)

// options 单次积分的命令行参数
type options struct {
	configPath string
	num, den   string
	a, b       float64
	record     string // JSON 记录输出路径
	chart      string // go-echarts 网页输出路径
	plot       string // 图片输出路径
	serve      string // 网页服务监听地址
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	opt := &options{}
	cmd := &cobra.Command{
		Use:   "integral",
		Short: "Definite integral of a rational function by partial fraction decomposition",
		Long: `Computes the definite integral of P(x)/Q(x) on [a, b].
Coefficients are given in ascending order: "1,0,2" is 1 + 2x^2.`,
		Example:      "  integral --num 1,6,0,-12,0,17 --den 14,12,-18 -a 2 -b 3",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v, opt)
		},
	}

	// 全局参数
	pf := cmd.PersistentFlags()
	pf.StringVar(&opt.configPath, "config", "", "configuration file (YAML)")
	pf.Int64("seed", 0, "random seed for root finding (0 = time based)")
	pf.Bool("verbose", false, "verbose output")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.Bool("check-poles", true, "reject intervals containing a real pole")
	v.BindPFlag("seed", pf.Lookup("seed"))
	v.BindPFlag("log.verbose", pf.Lookup("verbose"))
	v.BindPFlag("log.level", pf.Lookup("log-level"))
	v.BindPFlag("check_poles", pf.Lookup("check-poles"))

	// 单次积分参数
	f := cmd.Flags()
	f.StringVar(&opt.num, "num", "", "numerator coefficients, ascending")
	f.StringVar(&opt.den, "den", "", "denominator coefficients, ascending")
	f.Float64VarP(&opt.a, "lower", "a", 0, "lower bound")
	f.Float64VarP(&opt.b, "upper", "b", 1, "upper bound")
	f.StringVar(&opt.record, "record", "", "write a JSON record of the decomposition")
	f.StringVar(&opt.chart, "chart", "", "write an HTML chart page")
	f.StringVar(&opt.plot, "plot", "", "write a plot image (png, svg, pdf)")
	f.StringVar(&opt.serve, "serve", "", "serve the chart page on this address, e.g. :8080")
	cmd.MarkFlagRequired("num")
	cmd.MarkFlagRequired("den")

	cmd.AddCommand(newBatchCmd(v, &opt.configPath), newInitConfigCmd())
	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, opt *options) error {
	cfg, err := config.Read(v, opt.configPath)
	if err != nil {
		return err
	}
	log := config.NewLogger(cfg.Log, cmd.ErrOrStderr())
	num, err := ParseCoeffs(opt.num)
	if err != nil {
		return fmt.Errorf("numerator: %w", err)
	}
	den, err := ParseCoeffs(opt.den)
	if err != nil {
		return fmt.Errorf("denominator: %w", err)
	}

	out := cmd.OutOrStdout()
	printFraction(out, maths.NewPoly(num...), maths.NewPoly(den...))

	rec := &debug.Record{}
	it, err := integral.New(cfg, integral.WithLogger(log), integral.WithDebug(rec))
	if err != nil {
		return err
	}
	value, err := it.Integrate(num, den, opt.a, opt.b)
	if err != nil {
		log.WithError(err).Error("integration failed")
		return err
	}
	if cfg.Log.Verbose {
		printRecord(out, rec)
	}
	fmt.Fprintf(out, "\nValue on [%g, %g]: %.15g\n", opt.a, opt.b, value)

	return output(cmd.Context(), log, rec, opt)
}

// output 写出记录、网页与图片，最后按需启动网页服务
func output(ctx context.Context, log logrus.FieldLogger, rec *debug.Record, opt *options) error {
	if opt.record != "" {
		if err := writeFile(opt.record, rec.Render); err != nil {
			return err
		}
		log.Infof("record written to %s", opt.record)
	}
	charts := &debug.Charts{Record: rec, Log: log}
	if opt.chart != "" {
		if err := writeFile(opt.chart, charts.Render); err != nil {
			return err
		}
		log.Infof("chart written to %s", opt.chart)
	}
	if opt.plot != "" {
		if err := (&debug.Plot{Record: rec}).Save(opt.plot); err != nil {
			return err
		}
		log.Infof("plot written to %s", opt.plot)
	}
	if opt.serve == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", charts.Handler)
	srv := &http.Server{Addr: opt.serve, Handler: mux}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	log.Infof("serving charts on %s", opt.serve)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printFraction 以分数线的形式打印 P/Q
func printFraction(w io.Writer, num, den maths.Poly[float64]) {
	top, bottom := num.String(), den.String()
	width := max(utf8.RuneCountInString(top), utf8.RuneCountInString(bottom))
	fmt.Fprintln(w, "Integral of:")
	fmt.Fprintln(w, top)
	fmt.Fprintln(w, strings.Repeat("-", width))
	fmt.Fprintln(w, bottom)
}

// printRecord 打印根与部分分式
func printRecord(w io.Writer, rec *debug.Record) {
	fmt.Fprintln(w, "\nRoots of the denominator:")
	for i, r := range rec.Roots {
		fmt.Fprintf(w, "  r%d = %s (multiplicity %d)\n", i+1, r.Text, r.Multiplicity)
	}
	fmt.Fprintf(w, "\nPartial fractions (scale %g):\n", rec.Scale)
	for _, e := range rec.Elements {
		fmt.Fprintf(w, "  %s\n", e)
	}
	if len(rec.Quotient) > 0 {
		fmt.Fprintf(w, "  polynomial part: %s\n", maths.NewPoly(rec.Quotient...))
	}
	fmt.Fprintf(w, "  system rank %d, residual %.3g\n", rec.Rank, rec.Residual)
}
