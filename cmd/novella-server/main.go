package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"novella/internal/adapters/filesystem"
	"novella/internal/adapters/httpapi"
	"novella/internal/bootstrap"
	"novella/internal/config"
	"novella/internal/domain"
)

func main() {
	configFlag := flag.String("config", "", "YAML config file")
	addrFlag := flag.String("addr", "", "listen address (overrides config)")
	novelFlag := flag.String("novel", "", "novel file (overrides config)")
	debugFlag := flag.Bool("debug", false, "gin debug mode")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("novella-server: %v", err)
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}
	if *novelFlag != "" {
		cfg.Novel = *novelFlag
	}
	logger := config.NewLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("novella-server: %v", err)
	}
	defer rt.Close()

	lib, err := rt.Library(ctx)
	if err != nil {
		log.Fatalf("novella-server: %v", err)
	}

	srv := httpapi.NewServer(lib, rt.Novels, httpapi.Config{
		Addr:       cfg.Server.Addr,
		EnableCORS: cfg.Server.CORS,
		Debug:      *debugFlag,
		Admin:      cfg.Admin,
		Logger:     logger,
	})

	// Edits to the file reach readers live; with Postgres the published
	// copy changes only through PUT /api/novel or publish.
	if cfg.Postgres == "" {
		watcher := filesystem.NewWatcher(rt.File, cfg.Timings.WatchDebounce, logger)
		go func() {
			err := watcher.Watch(ctx,
				func(n *domain.Novel) { srv.ReloadNovel(ctx, n) },
				srv.ReportNovelError,
			)
			if err != nil {
				logger.Error("novel watcher stopped", "error", err)
			}
		}()
	}

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("novella-server: %v", err)
	}
}
