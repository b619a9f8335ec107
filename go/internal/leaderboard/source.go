package leaderboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/models"
)

// SourceKind names the backing of a DataSource
type SourceKind string

const (
	// SourceStore reads straight from the local Postgres repositories.
	SourceStore SourceKind = "store"
	// SourceRemote fetches from another instance's data services.
	SourceRemote SourceKind = "remote"
)

// DataSource is everything the leaderboard reads. Callers do not care which
// kind backs it.
type DataSource interface {
	Kind() SourceKind
	GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	GetTier(ctx context.Context, id uuid.UUID) (*models.Tier, error)
	GetTours(ctx context.Context, seasonID uuid.UUID) ([]models.Tour, error)
	GetTeamsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error)
	GetGolfersByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Golfer, error)
}

// TournamentStore is the subset of the tournaments repository the store source reads
type TournamentStore interface {
	GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	GetTier(ctx context.Context, id uuid.UUID) (*models.Tier, error)
}

// TeamStore is the subset of the teams repository the store source reads
type TeamStore interface {
	GetTeamsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error)
	GetTours(ctx context.Context, seasonID uuid.UUID) ([]models.Tour, error)
}

// GolferStore is the subset of the golfers repository the store source reads
type GolferStore interface {
	GetGolfersByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Golfer, error)
}

// StoreSource serves leaderboard reads from the local repositories
type StoreSource struct {
	TournamentStore
	TeamStore
	GolferStore
}

// NewStoreSource creates a store-backed DataSource
func NewStoreSource(tournaments TournamentStore, teams TeamStore, golfers GolferStore) *StoreSource {
	return &StoreSource{
		TournamentStore: tournaments,
		TeamStore:       teams,
		GolferStore:     golfers,
	}
}

func (s *StoreSource) Kind() SourceKind { return SourceStore }

var _ DataSource = (*StoreSource)(nil)
