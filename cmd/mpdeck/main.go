package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/peterkuimelis/mpdeck/internal/command"
	"github.com/peterkuimelis/mpdeck/internal/config"
	"github.com/peterkuimelis/mpdeck/internal/log"
	tablenet "github.com/peterkuimelis/mpdeck/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := os.Args[1]
	switch cmd {
	case "host":
		runHost(ctx, os.Args[2:])
	case "join":
		runJoin(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  mpdeck host [--name ID] [--port P] [--config FILE] [--debug]")
	fmt.Println("  mpdeck join [--name ID] [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a table server and play from this terminal")
	fmt.Println("  join    Connect to a table server")
}

func runHost(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	name := fs.String("name", "host", "your player id (empty to only serve)")
	port := fs.String("port", "9000", "TCP port to listen on")
	configFile := fs.String("config", "", "path to mpdeck.yaml")
	debug := fs.Bool("debug", false, "write process logs to stderr")
	fs.Parse(args)

	cfg, err := config.Load(*configFile)
	if err != nil {
		fatal(err)
	}

	logger := zap.NewNop()
	if *debug {
		if logger, err = zap.NewDevelopment(); err != nil {
			fatal(err)
		}
	}
	defer logger.Sync()

	engine, err := cfg.NewEngine(log.NewTextLogger(os.Stdout))
	if err != nil {
		fatal(err)
	}

	srv := &tablenet.Server{
		Dispatcher: command.NewDispatcher(engine, cfg.Prefix),
		Port:       *port,
		IsAdmin:    cfg.IsAdmin,
		Logger:     logger,
	}
	if err := srv.Run(ctx, *name); err != nil {
		fatal(err)
	}
}

func runJoin(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	name := fs.String("name", "", "your player id (empty for a guest id)")
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	if err := tablenet.Connect(ctx, *addr, *name); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
