package db

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	GetTeamsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]TeamWithTour, error)
	GetToursBySeason(ctx context.Context, seasonID uuid.UUID) ([]Tour, error)
}

var _ Querier = (*Queries)(nil)
