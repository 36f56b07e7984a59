package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/born-ml/stdalgo/internal/algorithms"
	"github.com/born-ml/stdalgo/internal/backend/cpu"
	"github.com/born-ml/stdalgo/internal/backend/webgpu"
	"github.com/born-ml/stdalgo/internal/config"
	"github.com/born-ml/stdalgo/internal/exec"
	"github.com/born-ml/stdalgo/internal/profiling"
	"github.com/born-ml/stdalgo/internal/profiling/store"
	"github.com/born-ml/stdalgo/internal/view"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type benchOptions struct {
	n      int
	iters  int
	shifts []int
	spaces []string
	hold   time.Duration
}

func parseBenchFlags(args []string, stderr io.Writer) (benchOptions, error) {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := benchOptions{}
	fs.IntVar(&opts.n, "n", 1<<20, "elements copied per launch")
	fs.IntVar(&opts.iters, "iters", 10, "launches per case")
	shifts := fs.String("shifts", "0,1,64,4096", "destination shifts; 0 copies into a separate buffer")
	spaces := fs.String("spaces", "serial,threads,webgpu", "execution spaces to run")
	fs.DurationVar(&opts.hold, "hold", 0, "keep serving metrics this long after the run")

	if err := fs.Parse(args); err != nil {
		return benchOptions{}, err
	}
	if opts.n < 0 || opts.iters < 1 {
		return benchOptions{}, fmt.Errorf("bench: -n must be >= 0 and -iters >= 1")
	}

	for _, s := range strings.Split(*shifts, ",") {
		shift, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || shift < 0 {
			return benchOptions{}, fmt.Errorf("bench: invalid shift %q", s)
		}
		opts.shifts = append(opts.shifts, shift)
	}
	for _, s := range strings.Split(*spaces, ",") {
		name := strings.ToLower(strings.TrimSpace(s))
		switch name {
		case "serial", "threads", "webgpu":
			opts.spaces = append(opts.spaces, name)
		default:
			return benchOptions{}, fmt.Errorf("bench: unknown space %q", s)
		}
	}
	return opts, nil
}

// benchResult is one row of the report.
type benchResult struct {
	space string
	shift int
	iters int
	total time.Duration
	bytes int
}

func (r benchResult) throughput() float64 {
	if r.total <= 0 {
		return 0
	}
	return float64(r.bytes) * float64(r.iters) / r.total.Seconds() / (1 << 30)
}

func runBench(args []string, stdout, stderr io.Writer) error {
	opts, err := parseBenchFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tools, err := setupTools(cfg, logger)
	if err != nil {
		return err
	}
	defer tools.close()

	if cfg.MetricsAddr != "" && tools.registry != nil {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: newRouter(tools.registry), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.WithField("addr", cfg.MetricsAddr).Info("bench: serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("bench: metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var results []benchResult
	for _, name := range opts.spaces {
		space, release, err := openSpace(name, cfg)
		if errors.Is(err, webgpu.ErrUnavailable) {
			logger.WithError(err).Warn("bench: skipping space")
			continue
		}
		if err != nil {
			return err
		}

		for _, shift := range opts.shifts {
			r, err := benchCase(space, name, opts.n, shift, opts.iters)
			if err != nil {
				release()
				return err
			}
			logger.WithFields(logrus.Fields{
				"space": r.space,
				"shift": r.shift,
				"dtype": view.DataTypeOf[float32](),
				"total": r.total,
			}).Debug("bench: case done")
			results = append(results, r)
		}
		release()
	}

	writeResults(stdout, results)
	stats := exec.Scratch().Stats()
	fmt.Fprintf(stdout, "\nscratch: %d allocated, %d hits, %d misses, %d pooled\n",
		stats.Allocated, stats.Hits, stats.Misses, stats.Pooled)

	if tools.timer != nil {
		summaries, err := tools.timer.Summarize(ctx)
		if err != nil {
			return fmt.Errorf("bench: summarize: %w", err)
		}
		writeSummaries(stdout, summaries)
	}

	if opts.hold > 0 && cfg.MetricsAddr != "" {
		select {
		case <-time.After(opts.hold):
		case <-ctx.Done():
		}
	}
	return nil
}

func openSpace(name string, cfg config.Config) (exec.Space, func(), error) {
	switch name {
	case "serial":
		s := cpu.NewSerial()
		return s, func() { _ = s.Close() }, nil
	case "threads":
		s := cpu.NewThreads(cfg.Parallel)
		return s, func() { _ = s.Close() }, nil
	default:
		s, err := webgpu.NewWithHost(cpu.NewThreads(cfg.Parallel))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Release, nil
	}
}

// benchCase shifts n elements right by shift inside one buffer, or copies
// them into a second buffer when shift is 0, and checks the first result
// against a sequential copy.
func benchCase(space exec.Space, name string, n, shift, iters int) (benchResult, error) {
	label := fmt.Sprintf("bench/%s/shift=%d", name, shift)

	src := make([]float32, n+shift)
	for i := range src {
		src[i] = float32(i)
	}
	dst := src
	if shift == 0 {
		dst = make([]float32, n)
	}
	want := slices.Clone(dst)
	copy(want[shift:], src[:n])

	first := view.SliceBegin(src)
	var total time.Duration
	for i := 0; i < iters; i++ {
		start := time.Now()
		_, err := algorithms.CopyBackward(space, first, first.Add(n), view.SliceEnd(dst), algorithms.WithLabel(label))
		total += time.Since(start)
		if err != nil {
			return benchResult{}, fmt.Errorf("bench: %s: %w", label, err)
		}
		if i == 0 && !slices.Equal(dst, want) {
			return benchResult{}, fmt.Errorf("bench: %s: result differs from sequential copy", label)
		}
	}

	return benchResult{space: name, shift: shift, iters: iters, total: total, bytes: n * 4}, nil
}

func writeResults(w io.Writer, results []benchResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SPACE\tSHIFT\tITERS\tMEAN\tGiB/s")
	for _, r := range results {
		shift := strconv.Itoa(r.shift)
		if r.shift == 0 {
			shift = "disjoint"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%v\t%.2f\n", r.space, shift, r.iters, r.total/time.Duration(r.iters), r.throughput())
	}
	_ = tw.Flush()
}

func writeSummaries(w io.Writer, summaries []store.Summary) {
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tKIND\tDEVICE\tCOUNT\tFAILURES\tMEAN\tMAX")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%v\t%v\n", s.Label, s.Kind, s.Device, s.Count, s.Failures, s.Mean, s.Max)
	}
	_ = tw.Flush()
}

// benchTools holds the profiling tools registered for one run.
type benchTools struct {
	registered []profiling.Tool
	registry   *prometheus.Registry
	timer      *store.KernelTimer
}

func setupTools(cfg config.Config, logger *logrus.Logger) (*benchTools, error) {
	t := &benchTools{}
	for _, name := range cfg.Tools {
		switch name {
		case config.ToolLog:
			t.register(profiling.NewLogTool(logger))
		case config.ToolMetrics:
			t.registry = prometheus.NewRegistry()
			tool, err := profiling.NewMetricsTool(t.registry)
			if err != nil {
				t.close()
				return nil, fmt.Errorf("metrics tool: %w", err)
			}
			t.register(tool)
		case config.ToolSQLite:
			timer, err := store.Open(cfg.DBPath, logger)
			if err != nil {
				t.close()
				return nil, err
			}
			t.timer = timer
			t.register(timer)
		}
	}
	return t, nil
}

func (t *benchTools) register(tool profiling.Tool) {
	profiling.Register(tool)
	t.registered = append(t.registered, tool)
}

func (t *benchTools) close() {
	for _, tool := range t.registered {
		profiling.Unregister(tool)
	}
	if t.timer != nil {
		_ = t.timer.Close()
	}
}
