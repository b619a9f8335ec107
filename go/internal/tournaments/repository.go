package tournaments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/models"
	"github.com/mcdev12/fantasygolf/go/internal/sqlutil"
	"github.com/mcdev12/fantasygolf/go/internal/tournaments/db"
	"github.com/sqlc-dev/pqtype"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetTournament(ctx context.Context, id uuid.UUID) (db.Tournament, error)
	GetTier(ctx context.Context, id uuid.UUID) (db.Tier, error)
	ListLiveTournaments(ctx context.Context) ([]db.Tournament, error)
}

// Repository implements tournament data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new tournaments repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// GetTournament retrieves a tournament by ID
func (r *Repository) GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	dbTournament, err := r.queries.GetTournament(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	return r.dbTournamentToModel(dbTournament), nil
}

// GetTier retrieves a tier and decodes its points and payout tables
func (r *Repository) GetTier(ctx context.Context, id uuid.UUID) (*models.Tier, error) {
	dbTier, err := r.queries.GetTier(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTierNotFound
		}
		return nil, fmt.Errorf("failed to get tier: %w", err)
	}

	points, err := decodeSchedule(dbTier.Points)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tier points: %w", err)
	}
	payouts, err := decodeSchedule(dbTier.Payouts)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tier payouts: %w", err)
	}

	return &models.Tier{
		ID:      dbTier.ID,
		Name:    dbTier.Name,
		Points:  points,
		Payouts: payouts,
	}, nil
}

// ListLiveTournaments retrieves every tournament currently flagged as in play
func (r *Repository) ListLiveTournaments(ctx context.Context) ([]models.Tournament, error) {
	dbTournaments, err := r.queries.ListLiveTournaments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list live tournaments: %w", err)
	}

	tournaments := make([]models.Tournament, len(dbTournaments))
	for i, t := range dbTournaments {
		tournaments[i] = *r.dbTournamentToModel(t)
	}

	return tournaments, nil
}

// dbTournamentToModel converts a database tournament to domain model
func (r *Repository) dbTournamentToModel(t db.Tournament) *models.Tournament {
	return &models.Tournament{
		ID:           t.ID,
		Name:         t.Name,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		CurrentRound: sqlutil.FromSqlInt16(t.CurrentRound),
		LivePlay:     t.LivePlay,
		CourseID:     sqlutil.FromNullUUID(t.CourseID),
		TierID:       sqlutil.FromNullUUID(t.TierID),
		SeasonID:     t.SeasonID,
		CreatedAt:    t.CreatedAt,
	}
}

func decodeSchedule(raw pqtype.NullRawMessage) ([]int, error) {
	if !raw.Valid || len(raw.RawMessage) == 0 {
		return nil, nil
	}
	var out []int
	if err := json.Unmarshal(raw.RawMessage, &out); err != nil {
		return nil, err
	}
	return out, nil
}
