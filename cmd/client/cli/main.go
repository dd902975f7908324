package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/ticketdesk/internal/client/cli"
	"github.com/dmitrijs2005/ticketdesk/internal/client/config"
	"github.com/dmitrijs2005/ticketdesk/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := logging.NewZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = app.Close() }()

	app.Run(ctx)
}
