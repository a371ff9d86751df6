package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/PGV-da/Amazon-Affiliate-Bot/config"
	"github.com/PGV-da/Amazon-Affiliate-Bot/repositories"
	"github.com/PGV-da/Amazon-Affiliate-Bot/services"
	"github.com/PGV-da/Amazon-Affiliate-Bot/web"
)

const updateTimeoutSeconds = 30

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("failed to connect to Telegram: %v", err)
	}

	telegram := repositories.NewTelegramClient(bot, cfg.AlertUserID)
	shortener := repositories.NewShortenerClient(cfg.BitlyToken)
	defer shortener.Close()

	var dedup services.DedupStore
	if cfg.RedisAddr != "" {
		store := repositories.NewRedisDedupStore(cfg.RedisAddr)
		defer store.Close()
		dedup = store
		log.Printf("Using Redis posted-key store at %s", cfg.RedisAddr)
	} else {
		store, err := repositories.NewFileDedupStore(cfg.PostedDBPath)
		if err != nil {
			log.Fatalf("failed to load posted-key store: %v", err)
		}
		dedup = store
	}

	forwarder := services.NewForwarderService(
		services.WithPublisher(telegram),
		services.WithShortener(shortener),
		services.WithDedupStore(dedup),
		services.WithAlerter(telegram),
		services.WithTagRewriter(services.NewTagRewriter(cfg.AffiliateTag)),
		services.WithPerturber(services.NewPerturber(cfg.RewriteLevel, cfg.ExtraHashtags)),
		services.WithTargetChannel(cfg.TargetChannel),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := web.Start(cfg.Port, func(err error) {
		log.Printf("webserver not started: %v", err)
		telegram.SendAlert(ctx, fmt.Sprintf("Webserver failed to start: %v", err))
	})
	log.Printf("Web server started on port %s", cfg.Port)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSeconds
	updates := bot.GetUpdatesChan(u)

	sources := make(map[int64]bool, len(cfg.SourceChannels))
	for _, id := range cfg.SourceChannels {
		sources[id] = true
	}

	// Graceful Shutdown handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v, initiating shutdown...", sig)
		cancel()
		bot.StopReceivingUpdates()
	}()

	log.Printf("Bot started as @%s. Monitoring channels: %v", bot.Self.UserName, cfg.SourceChannels)

	// Messages are processed strictly one at a time, including any rate-limit
	// backoff, so the dedup check and record never interleave across messages.
	for update := range updates {
		msg := update.Message
		if msg == nil {
			msg = update.ChannelPost
		}
		if msg == nil {
			continue
		}

		if msg.IsCommand() && msg.Command() == "start" {
			reply := tgbotapi.NewMessage(msg.Chat.ID, "Hi! I am the Amazon Affiliate Bot, and I am alive and running.")
			if _, err := bot.Send(reply); err != nil {
				log.Printf("failed to answer /start: %v", err)
			}
			continue
		}

		if !sources[msg.Chat.ID] {
			continue
		}

		in := repositories.InboundFromMessage(msg)
		outcome := forwarder.ProcessMessage(ctx, in)
		log.Printf("Message from %d: %s", in.ChatID, outcome)

		if ctx.Err() != nil {
			break
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("webserver shutdown: %v", err)
	}
	log.Println("Shutdown complete.")
}
