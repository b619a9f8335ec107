package teams

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/models"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	GetTeamsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error)
	GetTours(ctx context.Context, seasonID uuid.UUID) ([]models.Tour, error)
}

// App handles team business logic
type App struct {
	repo TeamsRepository
}

// NewApp creates a new teams App
func NewApp(repo TeamsRepository) *App {
	return &App{
		repo: repo,
	}
}

// GetTeamsByTournament retrieves the teams entered in a tournament
func (a *App) GetTeamsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error) {
	return a.repo.GetTeamsByTournament(ctx, tournamentID)
}

// GetTours retrieves the tours of a season
func (a *App) GetTours(ctx context.Context, seasonID uuid.UUID) ([]models.Tour, error) {
	return a.repo.GetTours(ctx, seasonID)
}
