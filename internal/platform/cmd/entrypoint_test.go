package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	DBPath  string `env:"CMD_TEST_DB_PATH" envDefault:"data/test.db"`
	Storage string `env:"CMD_TEST_STORAGE" envDefault:"sqlite"`
}

func TestParseConfigReadsPrefixedEnvAndFlags(t *testing.T) {
	t.Setenv("PIPSHEET_CMD_TEST_DB_PATH", "env.db")
	t.Setenv("PIPSHEET_CMD_TEST_STORAGE", "bbolt")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "db path")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage")

	if err := ParseArgs(fs, []string{"-db", "flag.db"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.DBPath != "flag.db" {
		t.Fatalf("db path = %q, want flag value", cfg.DBPath)
	}
	if cfg.Storage != "bbolt" {
		t.Fatalf("storage = %q, want env value", cfg.Storage)
	}
}

func TestParseConfigFromArgsUsesDefaults(t *testing.T) {
	cfg := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	if err := ParseConfigFromArgs(&cfg, fs, nil); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfg.DBPath != "data/test.db" {
		t.Fatalf("db path = %q, want default", cfg.DBPath)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	var cfg *testConfig
	if err := ParseConfig(cfg); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceSheet, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("PIPSHEET_OTEL_ENDPOINT", "")
	want := errors.New("boom")
	err := RunWithTelemetry(context.Background(), ServiceSheet, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
