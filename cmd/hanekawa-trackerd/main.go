// Command hanekawa-trackerd is the BitTorrent tracker daemon: it loads
// configuration, connects to Postgres, and serves both the HTTP
// (BEP 3/48) and UDP (BEP 15) tracker front-ends concurrently.
//
// Grounded on original_source/hanekawa-server/src/lib.rs's start function
// (spawn HTTP and UDP concurrently, join both).
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hanekawa-tracker/hanekawa-go/internal/config"
	"github.com/hanekawa-tracker/hanekawa-go/internal/store"
	"github.com/hanekawa-tracker/hanekawa-go/internal/trackerhttp"
	"github.com/hanekawa-tracker/hanekawa-go/internal/trackerudp"
)

func main() {
	configFile := flag.String("config", "hanekawa.toml", "path to the TOML config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	peerStore, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("store", "error", err)
		os.Exit(1)
	}
	defer peerStore.Close()

	httpSvc := trackerhttp.NewService(peerStore, cfg.PeerAnnounceInterval, cfg.PeerActivityTimeout)
	udpSvc := trackerudp.NewService(peerStore, cfg.PeerAnnounceInterval, cfg.PeerActivityTimeout)

	errs := make(chan error, 2)

	go func() {
		server := &http.Server{Addr: cfg.HTTPBindAddr, Handler: trackerhttp.NewHandler(httpSvc, logger)}
		go func() {
			<-ctx.Done()
			server.Close()
		}()
		logger.Info("trackerhttp: listening", "addr", cfg.HTTPBindAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
			return
		}
		errs <- nil
	}()

	go func() {
		udpServer, err := trackerudp.Listen(cfg.UDPBindAddr, udpSvc, logger)
		if err != nil {
			errs <- err
			return
		}
		defer udpServer.Close()
		logger.Info("trackerudp: listening", "addr", cfg.UDPBindAddr)
		errs <- udpServer.Run(ctx)
	}()

	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil && err != context.Canceled {
			logger.Error("shutdown", "error", err)
		}
	}
}
