package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/fantasygolf/go/clients/dataservice_client"
	"github.com/mcdev12/fantasygolf/go/internal/dbconfig"
	"github.com/mcdev12/fantasygolf/go/internal/golfers"
	golfersdb "github.com/mcdev12/fantasygolf/go/internal/golfers/db"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard/archive"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard/freshness"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard/gateway"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard/publisher"
	"github.com/mcdev12/fantasygolf/go/internal/teams"
	teamsdb "github.com/mcdev12/fantasygolf/go/internal/teams/db"
	"github.com/mcdev12/fantasygolf/go/internal/tournaments"
	tournamentsdb "github.com/mcdev12/fantasygolf/go/internal/tournaments/db"
	"github.com/rs/zerolog/log"
)

type Services struct {
	// Data services are only mounted when reading from the local store.
	Tournaments *tournaments.Service
	Teams       *teams.Service
	Golfers     *golfers.Service

	Leaderboard *leaderboard.Service
	Gateway     *gateway.WebSocketHandler

	manager     *freshness.Manager
	connections *gateway.ConnectionManager
	listener    *freshness.Listener
	consumer    *gateway.EventConsumer
	publisher   *publisher.JetStreamPublisher
	database    *sql.DB
}

func setupServices(ctx context.Context, cfg Config) (*Services, error) {
	freshCfg, err := freshness.LoadConfig(cfg.LeaderboardConfig)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard config: %w", err)
	}
	clock := clockwork.NewRealClock()
	s := &Services{}

	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer
	var (
		source      leaderboard.DataSource
		liveLister  freshness.LiveLister
		listenerCfg = freshness.DefaultListenerConfig()
	)
	switch cfg.SourceKind {
	case leaderboard.SourceStore:
		dbCfg, err := dbconfig.NewConfigFromEnv()
		if err != nil {
			return nil, err
		}
		database, err := setupDatabase(dbCfg)
		if err != nil {
			return nil, err
		}
		s.database = database

		tournamentsRepo := tournaments.NewRepository(tournamentsdb.New(database))
		s.Tournaments = tournaments.NewService(tournaments.NewApp(tournamentsRepo, clock))

		teamsRepo := teams.NewRepository(teamsdb.New(database))
		s.Teams = teams.NewService(teams.NewApp(teamsRepo))

		golfersRepo := golfers.NewRepository(golfersdb.New(database))
		s.Golfers = golfers.NewService(golfers.NewApp(golfersRepo))

		source = leaderboard.NewStoreSource(tournamentsRepo, teamsRepo, golfersRepo)
		liveLister = tournamentsRepo
		listenerCfg.DatabaseURL = dbCfg.DSN()
		listenerCfg.NotifyChannel = cfg.NotifyChannel
	case leaderboard.SourceRemote:
		client := dataservice_client.NewDataServiceClient(cfg.RemoteURL)
		source = client
		// no database to LISTEN on; live flags come from the remote instance
		liveLister = client
	}

	// Leaderboard
	app := leaderboard.NewApp(source, clock)
	s.manager = freshness.NewManager(app, freshness.NewCache(), clock, freshCfg)
	s.Leaderboard = leaderboard.NewService(s.manager)

	// Live push
	s.connections = gateway.NewConnectionManager(s.manager, gateway.DefaultConnectionConfig())
	s.Gateway = gateway.NewWebSocketHandler(s.connections)

	if cfg.NATSURL != "" {
		pubCfg := publisher.DefaultJetStreamConfig()
		pubCfg.URL = cfg.NATSURL
		if s.publisher, err = publisher.NewJetStreamPublisher(pubCfg); err != nil {
			s.Close()
			return nil, fmt.Errorf("create publisher: %w", err)
		}
		s.manager.AddSink(s.publisher)

		consumerCfg := gateway.DefaultJetStreamConsumerConfig()
		consumerCfg.URL = cfg.NATSURL
		consumerCfg.ConsumerName = consumerName(cfg.ReplicaID)
		if s.consumer, err = gateway.NewEventConsumer(s.connections, consumerCfg); err != nil {
			s.Close()
			return nil, fmt.Errorf("create event consumer: %w", err)
		}
	} else {
		s.manager.AddSink(s.connections)
	}

	if cfg.ArchiveBucket != "" {
		archiver, err := archive.NewS3(ctx, archive.Config{
			Bucket: cfg.ArchiveBucket,
			Prefix: archive.DefaultConfig().Prefix,
			Region: cfg.ArchiveRegion,
		})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("create archiver: %w", err)
		}
		s.manager.AddSink(archiver)
	}

	if liveLister != nil {
		if s.listener, err = freshness.NewListener(liveLister, s.manager, listenerCfg); err != nil {
			s.Close()
			return nil, fmt.Errorf("create listener: %w", err)
		}
	}

	log.Info().
		Str("source", string(cfg.SourceKind)).
		Bool("nats", s.publisher != nil).
		Bool("archive", cfg.ArchiveBucket != "").
		Dur("poll_interval", freshCfg.PollInterval).
		Dur("stale_after", freshCfg.StaleAfter).
		Msg("services configured")

	return s, nil
}

// Start runs the background workers until ctx is cancelled.
func (s *Services) Start(ctx context.Context) {
	go s.connections.Start(ctx)

	if s.consumer != nil {
		go func() {
			if err := s.consumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("event consumer failed")
			}
		}()
	}
	if s.listener != nil {
		go func() {
			if err := s.listener.Start(ctx); err != nil {
				log.Error().Err(err).Msg("listener failed")
			}
		}()
	}
}

func (s *Services) Close() {
	if s.manager != nil {
		s.manager.Close()
	}
	if s.consumer != nil {
		s.consumer.Stop()
	}
	if s.publisher != nil {
		s.publisher.Close()
	}
	if s.database != nil {
		s.database.Close()
	}
}

// consumerName gives each replica its own durable, since every replica must
// see every event.
func consumerName(replicaID string) string {
	return "leaderboard-gateway-" + strings.NewReplacer(".", "-", " ", "-", "*", "-", ">", "-").Replace(replicaID)
}
