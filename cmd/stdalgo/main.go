// Package main provides the stdalgo CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/born-ml/stdalgo/internal/backend/cpu"
	"github.com/born-ml/stdalgo/internal/backend/webgpu"
	"github.com/born-ml/stdalgo/internal/config"
)

const version = "v0.0.1-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "stdalgo: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "stdalgo %s\n", version)
		return nil
	case "info":
		return runInfo(stdout)
	case "bench":
		return runBench(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "stdalgo - parallel standard algorithms for Go")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  info       Show execution spaces and host CPU features")
	fmt.Fprintln(w, "  bench      Benchmark copy_backward across spaces and shifts")
}

func runInfo(w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	f := cpu.DetectFeatures()
	features := strings.Join(f.Names(), " ")
	if features == "" {
		features = "none"
	}

	fmt.Fprintf(w, "arch:      %s\n", f.Architecture)
	fmt.Fprintf(w, "cpus:      %d\n", f.NumCPU)
	fmt.Fprintf(w, "features:  %s\n", features)
	fmt.Fprintf(w, "threads:   %d workers, min chunk %d\n", cfg.Parallel.Workers(), cfg.Parallel.MinChunkSize)
	fmt.Fprintf(w, "webgpu:    %v\n", webgpu.IsAvailable())
	return nil
}
