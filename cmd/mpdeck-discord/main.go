package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/mpdeck/internal/config"
	"github.com/peterkuimelis/mpdeck/internal/discord"
	"github.com/peterkuimelis/mpdeck/internal/log"
)

func main() {
	configFile := flag.String("config", "", "path to mpdeck.yaml")
	flag.Parse()

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		fatal(fmt.Errorf("DISCORD_TOKEN is not set"))
	}

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

	bot, err := discord.New(token, engine, cfg.Prefix, cfg.MessageSize, logger)
	if err != nil {
		fatal(err)
	}
	if err := bot.Open(); err != nil {
		fatal(err)
	}
	defer bot.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info("bot running, press Ctrl-C to exit")
	<-ctx.Done()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
