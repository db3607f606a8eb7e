package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"randomconnect/backend/internal/api/handler"
	"randomconnect/backend/internal/chathub"
	"randomconnect/backend/internal/config"
	"randomconnect/backend/internal/telegram"
)

func main() {
	log.Println("Starting Random Connect backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded")
	}
	cfg := config.Load()

	hub := chathub.NewHub(cfg)

	reaper := chathub.NewReaper(hub, cfg.ReapInterval, cfg.InactivityTimeout)
	go reaper.Run()

	if cfg.TelegramToken != "" {
		botService, err := telegram.NewBotService(cfg.TelegramToken, hub)
		if err != nil {
			log.Fatalf("Failed to start Telegram bot: %v", err)
		}
		go botService.Run()
	} else {
		log.Println("INFO: TELEGRAM_BOT_TOKEN not set, Telegram transport disabled")
	}

	h := handler.NewHandler(hub, cfg)
	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        h.Router(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("INFO: HTTP server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	log.Println("INFO: shutting down...")
	reaper.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("ERROR: shutdown: %v", err)
	}
}
