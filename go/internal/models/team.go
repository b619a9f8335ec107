package models

import (
	"github.com/google/uuid"
)

// Team is one member's set of golfer picks for a tournament. Scores are
// aggregated upstream from the picked golfers.
type Team struct {
	ID           uuid.UUID   `json:"id"`
	TournamentID uuid.UUID   `json:"tournament_id"`
	TourCardID   uuid.UUID   `json:"tour_card_id"`
	TourID       *uuid.UUID  `json:"tour_id,omitempty"` // nil when the tour card could not be resolved
	DisplayName  string      `json:"display_name"`
	Score        *int        `json:"score,omitempty"`
	Today        *int        `json:"today,omitempty"`
	Thru         *int        `json:"thru,omitempty"`
	Rounds       [4]*int     `json:"rounds"`
	Position     string      `json:"position"`
	PastPosition string      `json:"past_position"`
	GolferIDs    []uuid.UUID `json:"golfer_ids"`
}
