package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"histfetch/internal/cli"
)

const version = "1.0.0"

func main() {
	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals: a Ctrl-C during a backoff wait cancels
	// the in-flight fetch and stops the batch
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := cli.NewRootCmd(version).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
