// Command samas-server serves the Hindi samas annotator over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"yashubustudio/samas/internal/server"
	"yashubustudio/samas/samas"
)

type serverOptions struct {
	configPath string
	dataset    string
	addr       string
}

func main() {
	var opts serverOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json)")
	flag.StringVar(&opts.dataset, "dataset", "", "Dataset source; overrides config (file, sqlite://, s3://)")
	flag.StringVar(&opts.addr, "addr", "", "Listen address; overrides config")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stdout, "", log.LstdFlags)
	if err := run(ctx, opts, logger); err != nil {
		stop()
		log.Fatalf("samas-server: %v", err)
	}
}

// run serves until ctx is cancelled. The service is closed before it returns.
func run(ctx context.Context, opts serverOptions, logger *log.Logger) error {
	cfg, err := samas.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(opts.dataset); v != "" {
		cfg.Dataset = v
	}
	if v := strings.TrimSpace(opts.addr); v != "" {
		cfg.Server.Addr = v
	}

	svc, err := samas.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()
	logger.Print(svc.Summary())

	return server.New(svc, cfg.Server, logger).ListenAndServe(ctx)
}
