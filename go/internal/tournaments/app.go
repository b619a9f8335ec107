package tournaments

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/fantasygolf/go/internal/models"
)

// TournamentsRepository defines what the app layer needs from the repository
type TournamentsRepository interface {
	GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	GetTier(ctx context.Context, id uuid.UUID) (*models.Tier, error)
	ListLiveTournaments(ctx context.Context) ([]models.Tournament, error)
}

// App handles tournament business logic
type App struct {
	repo  TournamentsRepository
	clock clockwork.Clock
}

// NewApp creates a new tournaments App
func NewApp(repo TournamentsRepository, clock clockwork.Clock) *App {
	return &App{
		repo:  repo,
		clock: clock,
	}
}

// GetTournament retrieves a tournament along with its status as of now
func (a *App) GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, models.TournamentStatus, error) {
	t, err := a.repo.GetTournament(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return t, t.Status(a.clock.Now()), nil
}

// GetTier retrieves a points and payout tier
func (a *App) GetTier(ctx context.Context, id uuid.UUID) (*models.Tier, error) {
	return a.repo.GetTier(ctx, id)
}

// ListLiveTournaments retrieves the tournaments currently in play
func (a *App) ListLiveTournaments(ctx context.Context) ([]models.Tournament, error) {
	return a.repo.ListLiveTournaments(ctx)
}
