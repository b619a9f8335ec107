package db

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	GetGolfersByTournament(ctx context.Context, tournamentID uuid.UUID) ([]Golfer, error)
}

var _ Querier = (*Queries)(nil)
