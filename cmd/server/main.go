package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	approvalhandler "approval-relay/internal/approval/handler"
	"approval-relay/internal/approval/service"
	"approval-relay/internal/approval/store"
	"approval-relay/internal/config"
	"approval-relay/internal/gateway/telegram"
	healthhandler "approval-relay/internal/health/handler"
	"approval-relay/internal/security"
	"approval-relay/internal/server"
	"approval-relay/internal/telemetry"
	otelsetup "approval-relay/internal/telemetry/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	providers, err := otelsetup.NewProviders(ctx, cfg.OTLPEndpoint, "approval-relay", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()

	metrics, err := telemetry.New(providers.MeterProvider)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}

	signer, err := security.NewTagSigner(cfg.TokenSecret)
	if err != nil {
		log.Fatalf("security: %v", err)
	}

	st := store.New()
	go st.RunReaper(ctx, cfg.ReapIntervalDuration(), func(removed int) {
		metrics.Reaped(ctx, removed)
	})

	tg := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramBaseURL, cfg.TelegramChatID)
	broker := service.NewBroker(signer, st, tg, tg, cfg.TelegramAdminID, cfg.SessionTTLDuration(), metrics)

	router := server.NewRouter(server.Deps{
		API:    approvalhandler.NewAPI(broker, cfg.WebhookSecret),
		Health: healthhandler.New(tg),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	cancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
