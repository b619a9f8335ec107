package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Where leaderboard inputs come from: "store" reads Postgres, "remote"
	// reads another instance's data services at RemoteURL.
	SourceKind leaderboard.SourceKind `env:"SOURCE_KIND" envDefault:"store"`
	RemoteURL  string                 `env:"REMOTE_URL"`

	LeaderboardConfig string `env:"LEADERBOARD_CONFIG" envDefault:"config/leaderboard.yaml"`
	NotifyChannel     string `env:"NOTIFY_CHANNEL" envDefault:"leaderboard_updates"`

	// Optional fan-out and archive
	NATSURL       string `env:"NATS_URL"`
	ReplicaID     string `env:"REPLICA_ID"`
	ArchiveBucket string `env:"ARCHIVE_BUCKET"`
	ArchiveRegion string `env:"AWS_REGION" envDefault:"us-east-1"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.SourceKind {
	case leaderboard.SourceStore:
	case leaderboard.SourceRemote:
		if cfg.RemoteURL == "" {
			return Config{}, fmt.Errorf("REMOTE_URL is required when SOURCE_KIND=%s", cfg.SourceKind)
		}
	default:
		return Config{}, fmt.Errorf("unknown SOURCE_KIND %q", cfg.SourceKind)
	}

	if cfg.ReplicaID == "" {
		host, err := os.Hostname()
		if err != nil {
			return Config{}, fmt.Errorf("resolve replica id: %w", err)
		}
		cfg.ReplicaID = host
	}
	return cfg, nil
}
