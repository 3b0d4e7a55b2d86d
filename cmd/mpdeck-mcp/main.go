package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/mpdeck/internal/command"
	"github.com/peterkuimelis/mpdeck/internal/config"
	"github.com/peterkuimelis/mpdeck/internal/log"
	deckmcp "github.com/peterkuimelis/mpdeck/internal/mcp"
)

func main() {
	configFile := flag.String("config", "", "path to mpdeck.yaml")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fatal(err)
	}

	// zap's production config writes to stderr, leaving stdout to the protocol.
	logger, err := zap.NewProduction()
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()

	engine, err := cfg.NewEngine(log.NewZapLogger(logger))
	if err != nil {
		fatal(err)
	}
	sess := deckmcp.NewSession(engine, command.NewDispatcher(engine, cfg.Prefix), cfg.IsAdmin)

	s := server.NewMCPServer("mpdeck", "1.0.0")
	deckmcp.RegisterTools(s, sess)

	if err := server.ServeStdio(s); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
