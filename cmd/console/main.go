package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/outreach-console/internal/buildinfo"
	"github.com/dmitrijs2005/outreach-console/internal/client/cli"
	"github.com/dmitrijs2005/outreach-console/internal/client/config"
	"github.com/dmitrijs2005/outreach-console/internal/logging"
	"github.com/dmitrijs2005/outreach-console/internal/platform/otel"
)

const serviceName = "outreach-console"

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	shutdown, err := otel.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn(context.Background(), "tracing shutdown failed", "err", err)
		}
	}()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
