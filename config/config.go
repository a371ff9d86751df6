package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/PGV-da/Amazon-Affiliate-Bot/domain"
)

type Config struct {
	BotToken       string
	SourceChannels []int64
	TargetChannel  int64
	AlertUserID    int64
	AffiliateTag   string
	BitlyToken     string
	RewriteLevel   float64
	ExtraHashtags  string
	Port           string
	PostedDBPath   string
	RedisAddr      string
}

func Load() (*Config, error) {
	// Best effort: a missing .env file is fine, real env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		AffiliateTag:  os.Getenv("AFFILIATE_TAG"),
		BitlyToken:    os.Getenv("BITLY_TOKEN"),
		ExtraHashtags: strings.TrimSpace(os.Getenv("EXTRA_HASHTAGS")),
		Port:          os.Getenv("PORT"),
		PostedDBPath:  os.Getenv("POSTED_DB"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.AffiliateTag == "" {
		return nil, fmt.Errorf("AFFILIATE_TAG is required")
	}

	sources := os.Getenv("SOURCE_CHANNELS")
	if sources == "" {
		return nil, fmt.Errorf("SOURCE_CHANNELS is required")
	}
	for _, s := range strings.Split(sources, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("SOURCE_CHANNELS must be comma-separated numerical IDs, got %q", s)
		}
		cfg.SourceChannels = append(cfg.SourceChannels, id)
	}
	if len(cfg.SourceChannels) == 0 {
		return nil, fmt.Errorf("SOURCE_CHANNELS is required")
	}

	target := os.Getenv("TARGET_CHANNEL")
	if target == "" {
		return nil, fmt.Errorf("TARGET_CHANNEL is required")
	}
	targetID, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("TARGET_CHANNEL must be a numerical ID, got %q", target)
	}
	cfg.TargetChannel = targetID

	alert := os.Getenv("ALERT_USER_ID")
	if alert == "" {
		return nil, fmt.Errorf("ALERT_USER_ID is required")
	}
	alertID, err := strconv.ParseInt(alert, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ALERT_USER_ID must be a numerical ID, got %q", alert)
	}
	cfg.AlertUserID = alertID

	cfg.RewriteLevel = 0.35
	if lvl := os.Getenv("REWRITE_LEVEL"); lvl != "" {
		parsed, err := strconv.ParseFloat(lvl, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			return nil, fmt.Errorf("REWRITE_LEVEL must be a number between 0 and 1, got %q", lvl)
		}
		cfg.RewriteLevel = parsed
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.PostedDBPath == "" {
		cfg.PostedDBPath = domain.DefaultPostedDB
	}

	return cfg, nil
}
