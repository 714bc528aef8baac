package config

import (
	"errors"
	"os"
	"testing"

	"github.com/addrscope/addrscope/pkg/probe"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxDepth != 3 {
		t.Errorf("expected default max depth 3, got %d", cfg.MaxDepth)
	}
	if cfg.Output != "" {
		t.Errorf("expected no default output path, got %q", cfg.Output)
	}
	if !cfg.Compression {
		t.Error("expected compression enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tempFile, err := os.CreateTemp("", "config_test*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	content := "max_depth: 5\noutput: samples.log\ncompression: false\n"
	if _, err := tempFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tempFile.Close()

	cfg, err := Load(tempFile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxDepth != 5 {
		t.Errorf("expected max depth 5, got %d", cfg.MaxDepth)
	}
	if cfg.Output != "samples.log" {
		t.Errorf("expected output samples.log, got %q", cfg.Output)
	}
	if cfg.Compression {
		t.Error("expected compression disabled")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	tempFile, err := os.CreateTemp("", "config_test*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.WriteString("output: run.log\n"); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tempFile.Close()

	cfg, err := Load(tempFile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxDepth != 3 {
		t.Errorf("expected default max depth 3 for unset field, got %d", cfg.MaxDepth)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	tempFile, err := os.CreateTemp("", "config_test*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.WriteString("max_depth: [not a number\n"); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tempFile.Close()

	if _, err := Load(tempFile.Name()); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestValidateRejectsNonPositiveDepth(t *testing.T) {
	for _, depth := range []int{0, -1} {
		cfg := Default()
		cfg.MaxDepth = depth
		if err := cfg.Validate(); !errors.Is(err, probe.ErrInvalidDepth) {
			t.Errorf("max depth %d: expected ErrInvalidDepth, got %v", depth, err)
		}
	}
}
