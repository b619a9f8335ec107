package golfers

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/models"
)

// GolfersRepository defines what the app layer needs from the repository
type GolfersRepository interface {
	GetGolfersByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Golfer, error)
}

// App handles golfer business logic
type App struct {
	repo GolfersRepository
}

// NewApp creates a new golfers App
func NewApp(repo GolfersRepository) *App {
	return &App{
		repo: repo,
	}
}

// GetGolfersByTournament retrieves the field of a tournament
func (a *App) GetGolfersByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Golfer, error) {
	return a.repo.GetGolfersByTournament(ctx, tournamentID)
}
