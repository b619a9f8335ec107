package models

import (
	"github.com/google/uuid"
)

// Golfer is a single player in the field of one tournament
type Golfer struct {
	ID           uuid.UUID `json:"id"`
	TournamentID uuid.UUID `json:"tournament_id"`
	APIID        int       `json:"api_id"`
	Name         string    `json:"name"`
	Score        *int      `json:"score,omitempty"` // relative to par
	Today        *int      `json:"today,omitempty"`
	Thru         *int      `json:"thru,omitempty"`
	Rounds       [4]*int   `json:"rounds"`
	Position     string    `json:"position"`             // "T4", "12", "CUT", "WD", "DQ"
	PosChange    *int      `json:"pos_change,omitempty"` // provided by the scoring feed
	Group        int       `json:"group"`
	WorldRank    *int      `json:"world_rank,omitempty"`
}
