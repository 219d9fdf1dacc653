package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gomelclient/config"
	"gomelclient/pkg/apiclient"
	"gomelclient/pkg/logger"
	"gomelclient/pkg/notify"
	"gomelclient/pkg/webapi"
	"gomelclient/session"
	"gomelclient/store"
	"gomelclient/stream"
	"gomelclient/syncer"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Remote adapter and session (rehydrated from disk)
	api := apiclient.New(cfg.APIBase, log)
	sess := session.New(api, log, cfg.SessionFile)

	// 4. The store, bound to the session's identity snapshots
	st := store.New(api, log, sess.Identity, cfg.HostLookupLimit)

	// 5. Revalidate persisted tokens in the background
	go sess.Validate(ctx)

	// 6. Syncer: initial catalog load, role refresh, live channel lifecycle
	sy := syncer.New(sess, st, stream.Config{
		BaseURL:       cfg.APIBase,
		HealthTimeout: cfg.HealthTimeout,
		BackoffBase:   cfg.BackoffBase,
		BackoffMax:    cfg.BackoffMax,
	}, log)
	go sy.Run(ctx)

	// 7. Optional Telegram forwarder for live activity
	if cfg.TelegramBotToken != "" {
		notifier, err := notify.New(cfg.TelegramBotToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Error("failed to initialize telegram notifier", logger.Error(err))
			os.Exit(1)
		}
		notifier.Watch(st)
		log.Info("telegram notifier is watching store changes")
	}

	// 8. Local read-only API over the store
	go func() {
		addr := fmt.Sprintf(":%d", cfg.WebAPIPort)
		log.Info("web api is starting", logger.String("addr", addr))
		if err := webapi.RunServer(addr, st, sy); err != nil {
			log.Error("web api stopped", logger.Error(err))
		}
	}()

	log.Info("🚀 Gomel client sync layer is now running.")

	// 9. Graceful Shutdown listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("Stopping sync layer and shutting down...")
	cancel()
}
