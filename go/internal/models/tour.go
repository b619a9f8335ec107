package models

import (
	"github.com/google/uuid"
)

// Tour is a competitive group within a season; each tour gets its own leaderboard
type Tour struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortForm string    `json:"short_form"`
	SeasonID  uuid.UUID `json:"season_id"`
}

// TourCard is a member's registration on a tour for one season
type TourCard struct {
	ID          uuid.UUID `json:"id"`
	MemberID    uuid.UUID `json:"member_id"`
	TourID      uuid.UUID `json:"tour_id"`
	SeasonID    uuid.UUID `json:"season_id"`
	DisplayName string    `json:"display_name"`
}
