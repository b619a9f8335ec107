package golfers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/golfers/db"
	"github.com/mcdev12/fantasygolf/go/internal/models"
	"github.com/mcdev12/fantasygolf/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetGolfersByTournament(ctx context.Context, tournamentID uuid.UUID) ([]db.Golfer, error)
}

// Repository implements golfer data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new golfers repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// GetGolfersByTournament retrieves the field of a tournament
func (r *Repository) GetGolfersByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Golfer, error) {
	dbGolfers, err := r.queries.GetGolfersByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get golfers by tournament: %w", err)
	}

	golfers := make([]models.Golfer, len(dbGolfers))
	for i, g := range dbGolfers {
		golfers[i] = r.dbGolferToModel(g)
	}

	return golfers, nil
}

// dbGolferToModel converts a database golfer to domain model
func (r *Repository) dbGolferToModel(g db.Golfer) models.Golfer {
	return models.Golfer{
		ID:           g.ID,
		TournamentID: g.TournamentID,
		APIID:        int(g.ApiID),
		Name:         g.PlayerName,
		Score:        sqlutil.FromSqlInt32(g.Score),
		Today:        sqlutil.FromSqlInt32(g.Today),
		Thru:         sqlutil.FromSqlInt32(g.Thru),
		Rounds: [4]*int{
			sqlutil.FromSqlInt32(g.RoundOne),
			sqlutil.FromSqlInt32(g.RoundTwo),
			sqlutil.FromSqlInt32(g.RoundThree),
			sqlutil.FromSqlInt32(g.RoundFour),
		},
		Position:  sqlutil.FromSqlString(g.Position, ""),
		PosChange: sqlutil.FromSqlInt32(g.PosChange),
		Group:     sqlutil.FromSqlInt16(g.GroupNumber),
		WorldRank: sqlutil.FromSqlInt32(g.WorldRank),
	}
}
