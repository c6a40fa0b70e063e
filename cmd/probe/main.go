package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rosterpay/rosterpay/internal/probe"
	"github.com/rosterpay/rosterpay/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 2 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9090", "Base URL of the service")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	runner := probe.NewRunner(probe.Config{
		BaseURL: *baseURL,
		Timeout: *timeout,
	}, logger.Get())

	if err := runner.Run(ctx); err != nil {
		os.Stderr.WriteString("probe failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
