package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sitecms/backend/libs/logging"
	"sitecms/backend/services/content-service/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := cli.NewRootCommand(os.Stdout, logger).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "sitectl:", err)
		stop()
		os.Exit(1)
	}
}
