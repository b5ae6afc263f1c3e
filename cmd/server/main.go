// Package main runs the ELB access log shipper: an SNS webhook that queues
// newly written access log objects and a single background worker that
// ships their records to Loggly.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("elbship: %v", err)
		stop()
		os.Exit(1)
	}
}

// run loads configuration, wires the application and blocks until ctx ends
// or the server fails.
func run(ctx context.Context) error {
	cfg, logger, err := initializeApp()
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger, appDeps{})
	if err != nil {
		return err
	}

	return app.Run(ctx)
}
