package freshness

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mcdev12/fantasygolf/go/internal/models"
	"github.com/rs/zerolog/log"
)

type ListenerConfig struct {
	DatabaseURL      string        // Postgres DSN for LISTEN/NOTIFY, empty to only resync on the fallback ticker
	NotifyChannel    string        // Channel the scoring ingest notifies on, payload is a tournament id
	FallbackInterval time.Duration // How often to resync live flags for mounted tournaments
	PingInterval     time.Duration
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		DatabaseURL:      "",
		NotifyChannel:    "leaderboard_updates",
		FallbackInterval: time.Minute,
		PingInterval:     90 * time.Second,
	}
}

// LiveLister reports which tournaments are in play
type LiveLister interface {
	ListLiveTournaments(ctx context.Context) ([]models.Tournament, error)
}

// Notifiable is what the listener drives, normally the Manager
type Notifiable interface {
	Trigger(tournamentID uuid.UUID)
	SetLive(tournamentID uuid.UUID, live bool)
	Active() []uuid.UUID
}

// Listener turns Postgres notifications from the scoring ingest into
// leaderboard refreshes. Without a database it only resyncs live flags.
type Listener struct {
	listener    *pq.Listener
	tournaments LiveLister
	target      Notifiable
	cfg         ListenerConfig
}

func NewListener(tournaments LiveLister, target Notifiable, cfg ListenerConfig) (*Listener, error) {
	if cfg.DatabaseURL == "" {
		log.Info().
			Dur("fallback_interval", cfg.FallbackInterval).
			Msg("no database to listen on, resyncing live tournaments only")
		return &Listener{tournaments: tournaments, target: target, cfg: cfg}, nil
	}

	l := pq.NewListener(
		cfg.DatabaseURL,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	if err := l.Listen(cfg.NotifyChannel); err != nil {
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	log.Info().
		Str("channel", cfg.NotifyChannel).
		Msg("listening for notifications")

	return &Listener{
		listener:    l,
		tournaments: tournaments,
		target:      target,
		cfg:         cfg,
	}, nil
}

func (l *Listener) Start(ctx context.Context) error {
	log.Info().
		Str("channel", l.cfg.NotifyChannel).
		Dur("ping_interval", l.cfg.PingInterval).
		Dur("fallback_interval", l.cfg.FallbackInterval).
		Msg("listener started")

	fallbackTicker := time.NewTicker(l.cfg.FallbackInterval)
	defer fallbackTicker.Stop()

	// nil channels never fire when there is no pq listener
	var (
		notify <-chan *pq.Notification
		ping   <-chan time.Time
	)
	if l.listener != nil {
		pingTicker := time.NewTicker(l.cfg.PingInterval)
		defer pingTicker.Stop()
		notify, ping = l.listener.Notify, pingTicker.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("listener shutting down")
			return l.Stop()
		case note := <-notify:
			if note == nil {
				// nil notification means the connection was re-established and
				// notices may have been missed
				if err := l.syncLive(ctx); err != nil {
					log.Error().Err(err).Msg("failed to resync live tournaments")
				}
				continue
			}
			if err := l.handleNotification(note.Extra); err != nil {
				log.Error().Err(err).Msg("failed to handle notification")
			}
		case <-fallbackTicker.C:
			if err := l.syncLive(ctx); err != nil {
				log.Error().Err(err).Msg("failed to resync live tournaments")
			}
		case <-ping:
			if err := l.listener.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}

func (l *Listener) Stop() error {
	if l.listener == nil {
		return nil
	}
	return l.listener.Close()
}

// handleNotification handles a pg listen notification. Extra is the id of
// the tournament whose scores changed.
func (l *Listener) handleNotification(extra string) error {
	id, err := uuid.Parse(extra)
	if err != nil {
		return fmt.Errorf("invalid tournament ID in notification: %w", err)
	}

	log.Debug().Str("tournament_id", id.String()).Msg("leaderboard update notice")
	l.target.Trigger(id)
	return nil
}

// syncLive reconciles the live flag of every mounted tournament with the
// store, covering flips that happened without a notification.
func (l *Listener) syncLive(ctx context.Context) error {
	active := l.target.Active()
	if len(active) == 0 {
		return nil
	}

	live, err := l.tournaments.ListLiveTournaments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list live tournaments: %w", err)
	}
	isLive := make(map[uuid.UUID]bool, len(live))
	for _, t := range live {
		isLive[t.ID] = true
	}

	for _, id := range active {
		l.target.SetLive(id, isLive[id])
	}
	return nil
}
