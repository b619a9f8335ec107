package db

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	GetTier(ctx context.Context, id uuid.UUID) (Tier, error)
	GetTournament(ctx context.Context, id uuid.UUID) (Tournament, error)
	ListLiveTournaments(ctx context.Context) ([]Tournament, error)
}

var _ Querier = (*Queries)(nil)
