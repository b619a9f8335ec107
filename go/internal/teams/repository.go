package teams

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/models"
	"github.com/mcdev12/fantasygolf/go/internal/sqlutil"
	"github.com/mcdev12/fantasygolf/go/internal/teams/db"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetTeamsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]db.TeamWithTour, error)
	GetToursBySeason(ctx context.Context, seasonID uuid.UUID) ([]db.Tour, error)
}

// Repository implements team and tour data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new teams repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// GetTeamsByTournament retrieves every team entered in a tournament, with
// the tour resolved from each team's tour card
func (r *Repository) GetTeamsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error) {
	dbTeams, err := r.queries.GetTeamsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams by tournament: %w", err)
	}

	teams := make([]models.Team, 0, len(dbTeams))
	for _, dbTeam := range dbTeams {
		team, err := r.dbTeamToModel(dbTeam)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}

	return teams, nil
}

// GetTours retrieves the tours of a season
func (r *Repository) GetTours(ctx context.Context, seasonID uuid.UUID) ([]models.Tour, error) {
	dbTours, err := r.queries.GetToursBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tours: %w", err)
	}

	tours := make([]models.Tour, len(dbTours))
	for i, t := range dbTours {
		tours[i] = models.Tour{
			ID:        t.ID,
			Name:      t.Name,
			ShortForm: t.ShortForm,
			SeasonID:  t.SeasonID,
		}
	}

	return tours, nil
}

// dbTeamToModel converts a database team to domain model
func (r *Repository) dbTeamToModel(t db.TeamWithTour) (*models.Team, error) {
	golferIDs := make([]uuid.UUID, 0, len(t.GolferIds))
	for _, raw := range t.GolferIds {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("team %s has invalid golfer id %q: %w", t.ID, raw, err)
		}
		golferIDs = append(golferIDs, id)
	}

	return &models.Team{
		ID:           t.ID,
		TournamentID: t.TournamentID,
		TourCardID:   t.TourCardID,
		TourID:       sqlutil.FromNullUUID(t.TourID),
		DisplayName:  sqlutil.FromSqlString(t.DisplayName, ""),
		Score:        sqlutil.FromSqlInt32(t.Score),
		Today:        sqlutil.FromSqlInt32(t.Today),
		Thru:         sqlutil.FromSqlInt32(t.Thru),
		Rounds: [4]*int{
			sqlutil.FromSqlInt32(t.RoundOne),
			sqlutil.FromSqlInt32(t.RoundTwo),
			sqlutil.FromSqlInt32(t.RoundThree),
			sqlutil.FromSqlInt32(t.RoundFour),
		},
		Position:     sqlutil.FromSqlString(t.Position, ""),
		PastPosition: sqlutil.FromSqlString(t.PastPosition, ""),
		GolferIDs:    golferIDs,
	}, nil
}
