package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/fantasygolf/go/internal/models"
	"github.com/mcdev12/fantasygolf/go/internal/tournaments"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// App loads tournament data and assembles leaderboard snapshots
type App struct {
	source DataSource
	clock  clockwork.Clock
}

// NewApp creates a new leaderboard App
func NewApp(source DataSource, clock clockwork.Clock) *App {
	return &App{
		source: source,
		clock:  clock,
	}
}

// Load fetches everything a tournament's leaderboard needs and assembles
// a complete snapshot. Any fetch failure fails the whole load.
func (a *App) Load(ctx context.Context, tournamentID uuid.UUID) (*Snapshot, error) {
	tournament, err := a.source.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament %s: %w", tournamentID, err)
	}

	var (
		tier    *models.Tier
		tours   []models.Tour
		teams   []models.Team
		golfers []models.Golfer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if tours, err = a.source.GetTours(gctx, tournament.SeasonID); err != nil {
			return fmt.Errorf("failed to load tours: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if teams, err = a.source.GetTeamsByTournament(gctx, tournamentID); err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if golfers, err = a.source.GetGolfersByTournament(gctx, tournamentID); err != nil {
			return fmt.Errorf("failed to load golfers: %w", err)
		}
		return nil
	})
	if tournament.TierID != nil {
		tierID := *tournament.TierID
		g.Go(func() error {
			t, err := a.source.GetTier(gctx, tierID)
			if errors.Is(err, tournaments.ErrTierNotFound) {
				// Points are optional decoration; rank without them.
				log.Warn().
					Str("tournament_id", tournamentID.String()).
					Str("tier_id", tierID.String()).
					Msg("tier not found, skipping projected points")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load tier: %w", err)
			}
			tier = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := Assemble(Input{
		Tournament: *tournament,
		Tier:       tier,
		Tours:      tours,
		Teams:      teams,
		Golfers:    golfers,
		Now:        a.clock.Now(),
	})

	log.Debug().
		Str("tournament_id", tournamentID.String()).
		Str("source", string(a.source.Kind())).
		Int("boards", len(snap.Boards)).
		Int("field", len(snap.Field.Rows)).
		Int("dropped", snap.Dropped).
		Msg("assembled leaderboard")

	return snap, nil
}
