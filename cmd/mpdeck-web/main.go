package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/mpdeck/internal/command"
	"github.com/peterkuimelis/mpdeck/internal/config"
	"github.com/peterkuimelis/mpdeck/internal/log"
	"github.com/peterkuimelis/mpdeck/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	configFile := flag.String("config", "", "path to mpdeck.yaml")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()

	engine, err := cfg.NewEngine(log.NewZapLogger(logger.Named("events")))
	if err != nil {
		fatal(err)
	}

	srv := web.NewServer(web.Options{
		Engine:     engine,
		Dispatcher: command.NewDispatcher(engine, cfg.Prefix),
		DecksFile:  cfg.DecksFile,
		IsAdmin:    cfg.IsAdmin,
		Logger:     logger,
	})

	if err := srv.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
