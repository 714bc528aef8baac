package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/addrscope/addrscope/pkg/analysis"
	"github.com/addrscope/addrscope/pkg/probe"
)

func tempOutPath(t *testing.T) string {
	t.Helper()
	tempFile, err := os.CreateTemp("", "addrscope_out")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tempFile.Close()
	path := tempFile.Name()
	t.Cleanup(func() { os.Remove(path) })
	return path
}

func TestRunProbeAndAnalyze(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-depth", "3", "-no-color"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{"depth=1", "depth=2", "depth=3", "stack region:", "heap region:", "static region:"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRunClosesFileSinkOnError(t *testing.T) {
	path := tempOutPath(t)

	// Depth 1 probes cleanly but analysis needs two samples, so run fails
	// after the file sink has already recorded a sample.
	err := run([]string{"-depth", "1", "-out", path, "-no-color"}, io.Discard)
	if !errors.Is(err, analysis.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}

	// The sink was closed on the way out, so the compressed stream is
	// terminated and the recorded sample reads back.
	sink, err := probe.NewFileSink(path)
	if err != nil {
		t.Fatalf("Failed to reopen file sink: %v", err)
	}
	defer sink.Close()

	samples := sink.Samples()
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample read back, got %d", len(samples))
	}
	if samples[0].Depth != 1 {
		t.Errorf("expected depth 1, got %d", samples[0].Depth)
	}
}

func TestRunInvalidDepthFlag(t *testing.T) {
	err := run([]string{"-depth", "0"}, io.Discard)
	if !errors.Is(err, probe.ErrInvalidDepth) {
		t.Fatalf("expected ErrInvalidDepth, got %v", err)
	}
}

func TestErrorKind(t *testing.T) {
	cases := map[string]struct {
		err  error
		kind string
	}{
		"invalid depth":     {probe.ErrInvalidDepth, "invalid argument"},
		"out of memory":     {probe.ErrOutOfMemory, "out of memory"},
		"insufficient data": {analysis.ErrInsufficientData, "insufficient data"},
		"other":             {errors.New("boom"), "error"},
	}
	for name, tc := range cases {
		if got := errorKind(tc.err); got != tc.kind {
			t.Errorf("%s: expected %q, got %q", name, tc.kind, got)
		}
	}
}
