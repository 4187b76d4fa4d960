// Package main runs the Pip-Boy character sheet in a terminal.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	pipsheetcmd "github.com/louisbranch/pipsheet/internal/cmd/pipsheet"
	"github.com/louisbranch/pipsheet/internal/platform/config"
)

func main() {
	log.SetPrefix("[PIPSHEET] ")
	cfg, err := pipsheetcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pipsheetcmd.Run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
