package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/addrscope/addrscope/pkg/analysis"
	"github.com/addrscope/addrscope/pkg/config"
	"github.com/addrscope/addrscope/pkg/probe"
	"github.com/addrscope/addrscope/pkg/version"
)

const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "addrscope: %s: %v\n", errorKind(err), err)
		os.Exit(1)
	}
}

// run drives one probe-and-analyze invocation. Errors propagate back to
// main so deferred cleanup, closing the file sink in particular, happens
// before the process exits.
func run(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("addrscope", flag.ContinueOnError)
	depth := flags.Int("depth", 0, "recursion depth to probe to (overrides config)")
	configPath := flags.String("config", "", "path to a YAML config file")
	outPath := flags.String("out", "", "record samples to this file as well (overrides config)")
	noColor := flags.Bool("no-color", false, "disable colorized output")
	showVersion := flags.Bool("version", false, "print version information and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(out, version.GetVersionInfo())
		return nil
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			cfg.MaxDepth = *depth
		case "out":
			cfg.Output = *outPath
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	mem := probe.NewMemorySink()
	var sink probe.Sink = mem
	if cfg.Output != "" {
		opts := probe.DefaultFileSinkOptions()
		if !cfg.Compression {
			opts.Compression = probe.NoCompression
		}
		fileSink, err := probe.NewFileSinkWithOptions(cfg.Output, opts)
		if err != nil {
			return fmt.Errorf("open %s: %w", cfg.Output, err)
		}
		defer fileSink.Close()
		sink = probe.NewMultiSink(mem, fileSink)
	}

	before := analysis.TakeMemorySnapshot()

	p := probe.New(sink)
	if err := p.Run(cfg.MaxDepth); err != nil {
		// A partial sample sequence is not valid output.
		return err
	}

	after := analysis.TakeMemorySnapshot()

	color := !*noColor && isatty.IsTerminal(os.Stdout.Fd())
	printLegend(out, color)
	for _, s := range mem.Samples() {
		printSample(out, s, color)
	}

	report, err := analysis.Analyze(mem.Samples())
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "stack region:  %s\n", report.Stack)
	fmt.Fprintf(out, "heap region:   %s\n", report.Heap)
	fmt.Fprintf(out, "static region: %s\n", report.Static)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "runtime heap before: %s\n", before)
	fmt.Fprintf(out, "runtime heap after:  %s\n", after)
	return nil
}

// errorKind maps an error to the taxonomy name reported to the user.
func errorKind(err error) string {
	switch {
	case errors.Is(err, probe.ErrInvalidDepth):
		return "invalid argument"
	case errors.Is(err, probe.ErrOutOfMemory):
		return "out of memory"
	case errors.Is(err, analysis.ErrInsufficientData):
		return "insufficient data"
	default:
		return "error"
	}
}

func printLegend(out io.Writer, color bool) {
	if color {
		fmt.Fprintf(out, "%sProbing memory regions:%s stack (per-activation locals), heap (explicit allocations), static (process-lifetime values)\n", colorBold, colorReset)
		return
	}
	fmt.Fprintln(out, "Probing memory regions: stack (per-activation locals), heap (explicit allocations), static (process-lifetime values)")
}

func printSample(out io.Writer, s probe.Sample, color bool) {
	if color {
		fmt.Fprintf(out, "%sdepth=%d%s stack=0x%x heap=0x%x static=0x%x\n",
			colorCyan, s.Depth, colorReset, s.StackAddr, s.HeapAddr, s.StaticAddr)
		return
	}
	fmt.Fprintln(out, s)
}
